package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToastFor(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 24, 12, 0, 0, 0, time.UTC)
	n := Notification{
		ID:        "abc123xyz",
		Type:      TypeDocument,
		Title:     "Minutes",
		Message:   "Minutes of the last tenue are available",
		Link:      "/docs/minutes",
		Timestamp: now,
	}

	ts := ToastFor("sess-1", n)

	assert.Equal(t, Toast{
		SessionID:      "sess-1",
		NotificationID: "abc123xyz",
		Type:           TypeDocument,
		Title:          "Minutes",
		Message:        "Minutes of the last tenue are available",
		Link:           "/docs/minutes",
		CreatedAt:      now,
	}, ts)
}

func TestMultiToaster(t *testing.T) {
	t.Parallel()

	t.Run("forwards to all backends", func(t *testing.T) {
		t.Parallel()

		a, b := new(MockToaster), new(MockToaster)
		ts := Toast{SessionID: "sess-1", Title: "hello"}
		a.On("Toast", mock.Anything, ts).Return(nil).Once()
		b.On("Toast", mock.Anything, ts).Return(nil).Once()

		m := NewMultiToaster([]Toaster{a, nil, b})
		require.NoError(t, m.Toast(context.Background(), ts))

		a.AssertExpectations(t)
		b.AssertExpectations(t)
	})

	t.Run("failing backend does not stop others", func(t *testing.T) {
		t.Parallel()

		a, b := new(MockToaster), new(MockToaster)
		a.On("Toast", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
		b.On("Toast", mock.Anything, mock.Anything).Return(nil).Once()

		m := NewMultiToaster([]Toaster{a, b})
		assert.NoError(t, m.Toast(context.Background(), Toast{SessionID: "sess-1"}))

		a.AssertExpectations(t)
		b.AssertExpectations(t)
	})
}

func TestNoOpToaster(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NoOpToaster{}.Toast(context.Background(), Toast{}))
}

func TestType(t *testing.T) {
	t.Parallel()

	for _, typ := range Types {
		got, err := ParseType(string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	for _, raw := range []string{"", "INFO", "alert", "error"} {
		_, err := ParseType(raw)
		assert.ErrorIs(t, err, ErrInvalidType, raw)
	}
}

func TestNewID(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := NewID()
		require.Len(t, id, IDLength)
		for _, c := range id {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z'), "unexpected char %q", c)
		}
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestToastCodec(t *testing.T) {
	t.Parallel()

	ts := Toast{
		SessionID:      "sess-1",
		NotificationID: "abc123xyz",
		Type:           TypeWarning,
		Title:          "Dues",
		Message:        "Annual dues are due",
		CreatedAt:      time.Date(2025, 6, 24, 12, 0, 0, 0, time.UTC),
	}

	payload, err := encodeToast(ts)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), `"link"`)

	got, err := decodeToast(payload)
	require.NoError(t, err)
	assert.Equal(t, ts, got)

	_, err = decodeToast([]byte("not json"))
	assert.ErrorIs(t, err, ErrFailedToDecodeToast)

	_, err = decodeToast([]byte(`{"title":"orphan"}`))
	assert.ErrorIs(t, err, ErrFailedToDecodeToast)
	assert.ErrorIs(t, err, ErrEmptySessionID)
}
