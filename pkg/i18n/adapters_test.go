package i18n_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lodgekit/pkg/i18n"
)

func TestMapAdapter(t *testing.T) {
	t.Parallel()

	data := map[string]map[string]any{"en": {"a": "b"}}
	adapter := &i18n.MapAdapter{Data: data}

	got, err := adapter.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, data, got)

	got["en"]["a"] = "changed"
	assert.Equal(t, "b", data["en"]["a"])

	empty, err := (&i18n.MapAdapter{}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	t.Run("merges json and yaml files", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"locales/en.yaml":         {Data: []byte("en:\n  nav:\n    home: Home\n    agenda: Agenda\n")},
			"locales/fr.json":         {Data: []byte(`{"fr": {"nav": {"home": "Accueil"}}}`)},
			"locales/zz_override.yml": {Data: []byte("en:\n  nav:\n    agenda: Calendar\n")},
			"locales/README.md":       {Data: []byte("# not a translation file")},
		}

		got, err := i18n.NewFSAdapter(fsys, "locales").Load(context.Background())
		require.NoError(t, err)

		require.Contains(t, got, "en")
		require.Contains(t, got, "fr")
		nav := got["en"]["nav"].(map[string]any)
		assert.Equal(t, "Home", nav["home"])
		assert.Equal(t, "Calendar", nav["agenda"])
		assert.Equal(t, "Accueil", got["fr"]["nav"].(map[string]any)["home"])
	})

	t.Run("no translation files", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"notes.txt": {Data: []byte("hello")}}
		_, err := i18n.NewFSAdapter(fsys, "").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslationFilesFound)
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"en.json": {Data: []byte(`{"en": "not a map"}`)}}
		_, err := i18n.NewFSAdapter(fsys, ".").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToLoad)
		assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.NewFSAdapter(fstest.MapFS{}, "absent").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToWalkDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fsys := fstest.MapFS{"en.yaml": {Data: []byte("en:\n  a: b\n")}}
		_, err := i18n.NewFSAdapter(fsys, ".").Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// MockQuerier for testing PostgresAdapter
type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ret := m.Called(ctx, sql)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(pgx.Rows), ret.Error(1)
}

// fakeRows serves (lang, key, value) triples.
type fakeRows struct {
	rows    [][3]string
	pos     int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		r.closed = true
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.rows[r.pos-1]
	for i := range dest {
		*(dest[i].(*string)) = row[i]
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	row := r.rows[r.pos-1]
	return []any{row[0], row[1], row[2]}, nil
}

func TestPostgresAdapter(t *testing.T) {
	t.Parallel()

	t.Run("loads flat keys per language", func(t *testing.T) {
		t.Parallel()

		rows := &fakeRows{rows: [][3]string{
			{"en", "nav.home", "Home"},
			{"en", "nav.agenda", "Agenda"},
			{"fr", "nav.home", "Accueil"},
		}}
		db := new(MockQuerier)
		db.On("Query", mock.Anything, `SELECT lang, key, value FROM "translations" ORDER BY lang, key`).Return(rows, nil).Once()

		got, err := i18n.NewPostgresAdapter(db).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]map[string]any{
			"en": {"nav.home": "Home", "nav.agenda": "Agenda"},
			"fr": {"nav.home": "Accueil"},
		}, got)
		assert.True(t, rows.closed)
		db.AssertExpectations(t)

		tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: got})
		require.NoError(t, err)
		assert.Equal(t, "Accueil", tr.Resolve("fr", "nav.home", ""))
		assert.Equal(t, "Agenda", tr.Resolve("fr", "nav.agenda", ""))
	})

	t.Run("custom schema-qualified table", func(t *testing.T) {
		t.Parallel()

		db := new(MockQuerier)
		db.On("Query", mock.Anything, `SELECT lang, key, value FROM "content"."labels" ORDER BY lang, key`).Return(&fakeRows{}, nil).Once()

		got, err := i18n.NewPostgresAdapter(db, i18n.WithTable("content.labels")).Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
		db.AssertExpectations(t)
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()

		db := new(MockQuerier)
		db.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := i18n.NewPostgresAdapter(db).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToQueryDatabase)
	})

	t.Run("scan error", func(t *testing.T) {
		t.Parallel()

		rows := &fakeRows{rows: [][3]string{{"en", "a", "b"}}, scanErr: errors.New("bad column")}
		db := new(MockQuerier)
		db.On("Query", mock.Anything, mock.Anything).Return(rows, nil)

		_, err := i18n.NewPostgresAdapter(db).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToScanRow)
		assert.True(t, rows.closed)
	})

	t.Run("rows error", func(t *testing.T) {
		t.Parallel()

		rows := &fakeRows{err: errors.New("stream broken")}
		db := new(MockQuerier)
		db.On("Query", mock.Anything, mock.Anything).Return(rows, nil)

		_, err := i18n.NewPostgresAdapter(db).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToQueryDatabase)
	})
}
