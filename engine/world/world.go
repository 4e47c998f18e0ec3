// Package world is the small entity/component store the window record lives
// in. It offers exactly what the synchroniser needs: records with typed
// fields, per-field change ticks, predicate queries, singleton resources and
// deferred mutations. It is not safe for concurrent use; the event loop
// thread owns it.
package world

import (
	"reflect"
	"slices"
)

// Entity identifies a record. Ids are never reused.
type Entity uint32

type storage interface {
	remove(e Entity) bool
}

type cell[T any] struct {
	value   T
	added   uint64
	changed uint64
}

type column[T any] struct {
	rows map[Entity]*cell[T]
}

func (c *column[T]) remove(e Entity) bool {
	if _, ok := c.rows[e]; !ok {
		return false
	}
	delete(c.rows, e)
	return true
}

// World owns every record and resource.
type World struct {
	next      Entity
	alive     map[Entity]struct{}
	order     []Entity // live records, ascending
	columns   map[reflect.Type]storage
	resources map[reflect.Type]any
	tick      uint64
	deferred  []func(*World)
}

func New() *World {
	return &World{
		next:      1,
		alive:     map[Entity]struct{}{},
		columns:   map[reflect.Type]storage{},
		resources: map[reflect.Type]any{},
	}
}

// Spawn creates an empty record.
func (w *World) Spawn() Entity {
	e := w.next
	w.next++
	w.alive[e] = struct{}{}
	w.order = append(w.order, e)
	return e
}

// Despawn removes the record and all of its fields.
func (w *World) Despawn(e Entity) bool {
	if _, ok := w.alive[e]; !ok {
		return false
	}
	for _, c := range w.columns {
		c.remove(e)
	}
	delete(w.alive, e)
	if i, ok := slices.BinarySearch(w.order, e); ok {
		w.order = slices.Delete(w.order, i, i+1)
	}
	return true
}

func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Entities returns every live record in creation order. The slice is a
// copy, so callers may spawn or despawn while walking it.
func (w *World) Entities() []Entity {
	return slices.Clone(w.order)
}

// Query returns the live records matching pred, in creation order.
func (w *World) Query(pred func(Entity) bool) []Entity {
	var out []Entity
	for _, e := range w.Entities() {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// ChangeTick is the tick of the latest tracked mutation. Observers store it
// after a pass and hand it back to ChangedSince/EachChanged next time.
func (w *World) ChangeTick() uint64 { return w.tick }

// Defer queues a mutation to run at the next Flush.
func (w *World) Defer(fn func(*World)) {
	w.deferred = append(w.deferred, fn)
}

// Flush applies deferred mutations in order, including any they defer
// themselves, and returns how many ran.
func (w *World) Flush() int {
	n := 0
	for len(w.deferred) > 0 {
		batch := w.deferred
		w.deferred = nil
		for _, fn := range batch {
			fn(w)
			n++
		}
	}
	return n
}

func (w *World) bump() uint64 {
	w.tick++
	return w.tick
}

func columnOf[T any](w *World, create bool) *column[T] {
	t := reflect.TypeFor[T]()
	if c, ok := w.columns[t]; ok {
		return c.(*column[T])
	}
	if !create {
		return nil
	}
	c := &column[T]{rows: map[Entity]*cell[T]{}}
	w.columns[t] = c
	return c
}
