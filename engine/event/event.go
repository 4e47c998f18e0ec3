// Package event is a double-buffered event channel. Producers Send, each
// consumer drains with its own Reader, and Update retires events that every
// consumer has had one full update to observe.
package event

type entry struct {
	seq uint64
	ev  any
}

// Bus carries events of any type between the translator, the lifecycle
// manager and application logic.
type Bus struct {
	prev, cur []entry
	next      uint64
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Send(ev any) {
	b.cur = append(b.cur, entry{seq: b.next, ev: ev})
	b.next++
}

// Update swaps buffers: events sent before the previous Update are dropped.
// Call it once per application update.
func (b *Bus) Update() {
	b.prev = append(b.prev[:0], b.cur...)
	b.cur = b.cur[:0]
}

// Len counts the events still readable.
func (b *Bus) Len() int { return len(b.prev) + len(b.cur) }

// Reader tracks how far one consumer has read.
type Reader struct {
	next uint64
}

// NewReader returns a reader that only sees events sent from now on.
func (b *Bus) NewReader() *Reader { return &Reader{next: b.next} }

// Read returns every retained event the reader has not seen yet, oldest
// first.
func (r *Reader) Read(b *Bus) []any {
	var out []any
	for _, buf := range [2][]entry{b.prev, b.cur} {
		for _, e := range buf {
			if e.seq >= r.next {
				out = append(out, e.ev)
			}
		}
	}
	r.next = b.next
	return out
}

// Of filters evs down to the events of type T.
func Of[T any](evs []any) []T {
	var out []T
	for _, ev := range evs {
		if t, ok := ev.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
