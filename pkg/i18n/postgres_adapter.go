package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DefaultTranslationsTable is the table PostgresAdapter reads by default.
const DefaultTranslationsTable = "translations"

// Querier is the part of pgxpool.Pool the adapter needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresAdapter loads flat translations from rows of (lang, key, value).
// Keys are stored as their full dotted path.
type PostgresAdapter struct {
	db    Querier
	table string
}

// PostgresOption configures a PostgresAdapter.
type PostgresOption func(*PostgresAdapter)

// WithTable reads from the given table. Schema-qualified names such as
// "content.translations" are accepted.
func WithTable(name string) PostgresOption {
	return func(a *PostgresAdapter) {
		if name != "" {
			a.table = name
		}
	}
}

// NewPostgresAdapter creates an adapter querying db.
func NewPostgresAdapter(db Querier, opts ...PostgresOption) *PostgresAdapter {
	a := &PostgresAdapter{db: db, table: DefaultTranslationsTable}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *PostgresAdapter) query() string {
	table := pgx.Identifier(strings.Split(a.table, ".")).Sanitize()
	return fmt.Sprintf("SELECT lang, key, value FROM %s ORDER BY lang, key", table)
}

func (a *PostgresAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	rows, err := a.db.Query(ctx, a.query())
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryDatabase, err)
	}
	defer rows.Close()

	result := make(map[string]map[string]any)
	for rows.Next() {
		var lang, key, value string
		if err := rows.Scan(&lang, &key, &value); err != nil {
			return nil, errors.Join(ErrFailedToScanRow, err)
		}
		table, ok := result[lang]
		if !ok {
			table = make(map[string]any)
			result[lang] = table
		}
		table[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToQueryDatabase, err)
	}

	return result, nil
}
