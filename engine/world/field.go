package world

// Insert adds or replaces field T on e and marks it added and changed.
// It is a no-op for dead records.
func Insert[T any](w *World, e Entity, v T) bool {
	if !w.Alive(e) {
		return false
	}
	tick := w.bump()
	columnOf[T](w, true).rows[e] = &cell[T]{value: v, added: tick, changed: tick}
	return true
}

// InsertIfAbsent adds v only when e has no T yet.
func InsertIfAbsent[T any](w *World, e Entity, v T) bool {
	if Has[T](w, e) {
		return false
	}
	return Insert(w, e, v)
}

// Set writes field T and marks it changed. Missing fields are inserted.
func Set[T any](w *World, e Entity, v T) bool {
	c := columnOf[T](w, false)
	if c == nil || c.rows[e] == nil {
		return Insert(w, e, v)
	}
	cl := c.rows[e]
	cl.value = v
	cl.changed = w.bump()
	return true
}

// Update applies fn to a copy of field T and stores the result as a change.
func Update[T any](w *World, e Entity, fn func(*T)) bool {
	v, ok := Get[T](w, e)
	if !ok {
		return false
	}
	fn(&v)
	return Set(w, e, v)
}

func Get[T any](w *World, e Entity) (T, bool) {
	c := columnOf[T](w, false)
	if c != nil {
		if cl := c.rows[e]; cl != nil {
			return cl.value, true
		}
	}
	var zero T
	return zero, false
}

func Has[T any](w *World, e Entity) bool {
	_, ok := Get[T](w, e)
	return ok
}

func Remove[T any](w *World, e Entity) bool {
	c := columnOf[T](w, false)
	if c == nil {
		return false
	}
	return c.remove(e)
}

// ChangedSince reports whether field T on e was added or written after tick.
func ChangedSince[T any](w *World, e Entity, tick uint64) bool {
	c := columnOf[T](w, false)
	if c == nil {
		return false
	}
	cl := c.rows[e]
	return cl != nil && cl.changed > tick
}

// AddedSince reports whether field T was (re)inserted after tick.
func AddedSince[T any](w *World, e Entity, tick uint64) bool {
	c := columnOf[T](w, false)
	if c == nil {
		return false
	}
	cl := c.rows[e]
	return cl != nil && cl.added > tick
}

// Each visits every record carrying T in creation order.
func Each[T any](w *World, fn func(e Entity, v T)) {
	c := columnOf[T](w, false)
	if c == nil {
		return
	}
	for _, e := range w.Entities() {
		if cl := c.rows[e]; cl != nil {
			fn(e, cl.value)
		}
	}
}

// EachChanged visits the records whose T changed after tick.
func EachChanged[T any](w *World, tick uint64, fn func(e Entity, v T)) {
	c := columnOf[T](w, false)
	if c == nil {
		return
	}
	for _, e := range w.Entities() {
		if cl := c.rows[e]; cl != nil && cl.changed > tick {
			fn(e, cl.value)
		}
	}
}

// With is a Query predicate matching records that carry T.
func With[T any](w *World) func(Entity) bool {
	return func(e Entity) bool { return Has[T](w, e) }
}
