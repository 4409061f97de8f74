// Package prefs remembers the last values entered in the calculator form so
// the next session starts where the previous one left off. It has no part
// in the calculation itself.
package prefs

import (
	"context"
	"sync"
)

// Form is the set of remembered inputs.
type Form struct {
	Pair        string
	Entry       float64
	Stop        float64
	Capital     float64
	RiskPercent float64
	Side        string
}

// DefaultForm is what a first-time user sees.
func DefaultForm() Form {
	return Form{
		Pair:        "EUR/USD",
		Capital:     1000,
		RiskPercent: 1,
		Side:        "buy",
	}
}

// Store persists the form. Load starts from defaults and overlays every
// field that was ever saved, so a saved zero stays zero.
type Store interface {
	Load(ctx context.Context, defaults Form) (Form, error)
	Save(ctx context.Context, f Form) error
	Close() error
}

// MemoryStore keeps the form in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	form *Form
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context, defaults Form) (Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.form == nil {
		return defaults, nil
	}
	return *m.form, nil
}

func (m *MemoryStore) Save(ctx context.Context, f Form) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = &f
	return nil
}

func (m *MemoryStore) Close() error { return nil }
