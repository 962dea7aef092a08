package inmemory

import "github.com/tdex-network/tdex-custody/internal/storageutil/uow"

// table is a map of records that keeps track of the previous value of every
// row written while a transaction is open, so that it can be restored on
// rollback.
type table[K comparable, V any] struct {
	rows    map[K]V
	journal map[K]*V
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{rows: make(map[K]V)}
}

func (t *table[K, V]) Begin() (uow.Tx, error) {
	t.journal = make(map[K]*V)
	return t, nil
}

func (t *table[K, V]) Commit() error {
	t.journal = nil
	return nil
}

func (t *table[K, V]) Rollback() error {
	for k, prev := range t.journal {
		if prev == nil {
			delete(t.rows, k)
			continue
		}
		t.rows[k] = *prev
	}
	t.journal = nil
	return nil
}

func (t *table[K, V]) get(k K) (V, bool) {
	v, ok := t.rows[k]
	return v, ok
}

func (t *table[K, V]) put(k K, v V) {
	t.record(k)
	t.rows[k] = v
}

func (t *table[K, V]) delete(k K) {
	t.record(k)
	delete(t.rows, k)
}

func (t *table[K, V]) values() []V {
	vs := make([]V, 0, len(t.rows))
	for _, v := range t.rows {
		vs = append(vs, v)
	}
	return vs
}

func (t *table[K, V]) record(k K) {
	if t.journal == nil {
		return
	}
	if _, ok := t.journal[k]; ok {
		return
	}
	if prev, ok := t.rows[k]; ok {
		t.journal[k] = &prev
		return
	}
	t.journal[k] = nil
}
