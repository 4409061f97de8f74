package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_DefaultsWhenEmpty(t *testing.T) {
	t.Parallel()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Load(context.Background(), DefaultForm())
	require.NoError(t, err)
	assert.Equal(t, DefaultForm(), got)
}

func TestSQLiteStore_SaveLoadAcrossSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	want := Form{Pair: "GBP/JPY", Entry: 190.123, Stop: 189.623, Capital: 2500.5, RiskPercent: 0.75, Side: "sell"}

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, DefaultForm()))
	require.NoError(t, s.Save(ctx, want))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Load(ctx, DefaultForm())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteStore_SavedZerosSurviveDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	want := Form{Pair: "USD/JPY", Entry: 150, Stop: 149.5, Capital: 0, RiskPercent: 0, Side: "sell"}

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, want))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	defaults := Form{Pair: "EUR/USD", Capital: 5000, RiskPercent: 2, Side: "buy"}
	got, err := s.Load(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteStore_PartialRowsUseDefaults(t *testing.T) {
	t.Parallel()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.db.Exec(`INSERT INTO settings (key, value) VALUES ('capital', '0')`)
	require.NoError(t, err)

	defaults := Form{Pair: "GBP/USD", Capital: 5000, RiskPercent: 2, Side: "buy"}
	got, err := s.Load(context.Background(), defaults)
	require.NoError(t, err)
	assert.Equal(t, Form{Pair: "GBP/USD", Capital: 0, RiskPercent: 2, Side: "buy"}, got)
}

func TestSQLiteStore_CorruptValue(t *testing.T) {
	t.Parallel()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.db.Exec(`INSERT INTO settings (key, value) VALUES ('capital', 'lots')`)
	require.NoError(t, err)

	_, err = s.Load(context.Background(), DefaultForm())
	assert.ErrorContains(t, err, "capital")
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemoryStore()

	got, err := m.Load(ctx, DefaultForm())
	require.NoError(t, err)
	assert.Equal(t, DefaultForm(), got)

	defaults := Form{Pair: "EUR/USD", Capital: 5000, RiskPercent: 2, Side: "buy"}
	got, err = m.Load(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, got)

	f := Form{Pair: "USD/JPY", Entry: 150, Stop: 149.9, Capital: 0, RiskPercent: 0, Side: "buy"}
	require.NoError(t, m.Save(ctx, f))

	got, err = m.Load(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, f, got)
	assert.NoError(t, m.Close())
}
