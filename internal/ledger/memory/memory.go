package memory

import (
	"context"
	"sort"
	"sync"

	"budget/internal/core"
)

// Store keeps both collections in process memory. Nothing survives a restart;
// it backs DATA_BACKEND=memory and the tests.
type Store struct {
	mu    sync.Mutex
	items map[core.Kind]map[int64]core.Transaction
	next  map[core.Kind]int64
}

func New() *Store {
	return &Store{
		items: map[core.Kind]map[int64]core.Transaction{
			core.Expense: {},
			core.Income:  {},
		},
		next: map[core.Kind]int64{
			core.Expense: 1,
			core.Income:  1,
		},
	}
}

// Add validates and stores the transaction under the next id for its kind.
func (s *Store) Add(_ context.Context, kind core.Kind, n core.NewTransaction) (core.Transaction, error) {
	if err := kind.Validate(); err != nil {
		return core.Transaction{}, err
	}
	n = n.Normalize(kind)
	if err := n.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next[kind]
	s.next[kind] = id + 1
	tx := core.Transaction{
		ID:          id,
		Kind:        kind,
		Date:        n.Date,
		Description: n.Description,
		Amount:      n.Amount,
		Category:    n.Category,
	}
	s.items[kind][id] = tx
	return tx, nil
}

func (s *Store) Update(_ context.Context, kind core.Kind, id int64, p core.Patch) (core.Transaction, bool, error) {
	if err := kind.Validate(); err != nil {
		return core.Transaction{}, false, err
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return core.Transaction{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.items[kind][id]
	if !ok {
		return core.Transaction{}, false, nil
	}
	tx = p.Apply(tx)
	s.items[kind][id] = tx
	return tx, true, nil
}

func (s *Store) Delete(_ context.Context, kind core.Kind, id int64) (bool, error) {
	if err := kind.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[kind][id]; !ok {
		return false, nil
	}
	delete(s.items[kind], id)
	return true, nil
}

func (s *Store) List(_ context.Context, kind core.Kind, limit int) ([]core.Transaction, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	out := s.filter(kind, func(core.Transaction) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListByDate(_ context.Context, kind core.Kind, date core.Date) ([]core.Transaction, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	return s.filter(kind, func(t core.Transaction) bool {
		return t.Date.Equal(date.Time)
	}), nil
}

func (s *Store) ListRange(_ context.Context, kind core.Kind, from, to core.Date) ([]core.Transaction, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	return s.filter(kind, func(t core.Transaction) bool {
		return !t.Date.Before(from.Time) && t.Date.Before(to.Time)
	}), nil
}

func (s *Store) FindByID(_ context.Context, kind core.Kind, id int64) (core.Transaction, bool, error) {
	if err := kind.Validate(); err != nil {
		return core.Transaction{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.items[kind][id]
	return tx, ok, nil
}

// Categories returns the distinct categories of kind in name order.
func (s *Store) Categories(_ context.Context, kind core.Kind) ([]string, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, t := range s.items[kind] {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) filter(kind core.Kind, keep func(core.Transaction) bool) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.items[kind]))
	for _, t := range s.items[kind] {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return core.Less(out[i], out[j]) })
	return out
}
