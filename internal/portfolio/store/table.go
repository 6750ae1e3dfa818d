package store

import "slices"

// record is satisfied by every stored model: values are copied on the way in
// and on the way out so callers never hold live state.
type record[V any] interface {
	Clone() V
}

// table keeps rows by id and remembers insertion order, so filter results come
// back in the order records were created.
type table[K ~string, V record[V]] struct {
	rows  map[K]V
	order []K
}

func newTable[K ~string, V record[V]]() *table[K, V] {
	return &table[K, V]{rows: make(map[K]V)}
}

func (t *table[K, V]) get(key K) (V, bool) {
	v, ok := t.rows[key]
	if !ok {
		var zero V
		return zero, false
	}
	return v.Clone(), true
}

func (t *table[K, V]) has(key K) bool {
	_, ok := t.rows[key]
	return ok
}

func (t *table[K, V]) put(key K, v V) {
	if _, ok := t.rows[key]; !ok {
		t.order = append(t.order, key)
	}
	t.rows[key] = v.Clone()
}

func (t *table[K, V]) delete(key K) bool {
	if _, ok := t.rows[key]; !ok {
		return false
	}
	delete(t.rows, key)
	t.order = slices.DeleteFunc(t.order, func(k K) bool { return k == key })
	return true
}

// filter returns copies of matching rows in insertion order. Never nil.
func (t *table[K, V]) filter(match func(V) bool) []V {
	out := make([]V, 0)
	for _, key := range t.order {
		v := t.rows[key]
		if match == nil || match(v) {
			out = append(out, v.Clone())
		}
	}
	return out
}

// each visits live rows in insertion order without copying. Callers must not retain them.
func (t *table[K, V]) each(fn func(V)) {
	for _, key := range t.order {
		fn(t.rows[key])
	}
}

func (t *table[K, V]) clone() *table[K, V] {
	c := &table[K, V]{
		rows:  make(map[K]V, len(t.rows)),
		order: slices.Clone(t.order),
	}
	for k, v := range t.rows {
		c.rows[k] = v.Clone()
	}
	return c
}
