//go:build profile

package profiler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Init must be called once before the event loop starts, with the ring
// capacity in scope events. Older events are overwritten.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	rec.reset(capacity)
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	if !rec.ready.Load() {
		return func() {}
	}
	frame := names.id(name)
	opened := time.Now().UnixNano()
	rec.push(mark{at: opened, frame: frame, open: true})
	return func() {
		rec.push(mark{at: max(time.Now().UnixNano(), opened), frame: frame})
	}
}

// Dump writes the recorded scopes to path as an evented speedscope profile.
func Dump(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := writeSpeedscope(f, rec.snapshot(), names.all()); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// OpenProfilerGraph dumps into the temp dir and opens the file in
// speedscope if it is installed. It returns the profile path.
func OpenProfilerGraph() (string, error) {
	path := filepath.Join(os.TempDir(), "casement.profile.speedscope.json")
	if err := Dump(path); err != nil {
		return "", err
	}
	cmd := exec.Command("speedscope", path)
	cmd.SysProcAttr = hideWindowAttr()
	if err := cmd.Start(); err != nil {
		slog.Warn("launching speedscope failed", "path", path, "error", err)
	}
	return path, nil
}

type mark struct {
	at    int64 // unix ns
	frame int
	open  bool
}

// ring keeps the newest marks; writers only bump an atomic cursor.
type ring struct {
	ready atomic.Bool
	n     uint64
	next  atomic.Uint64
	marks []mark
}

var rec ring

func (r *ring) reset(capacity int) {
	r.n = uint64(capacity)
	r.marks = make([]mark, capacity)
	r.next.Store(0)
	r.ready.Store(true)
}

func (r *ring) push(m mark) {
	i := r.next.Add(1) - 1
	r.marks[i%r.n] = m
}

// snapshot returns the surviving marks in write order.
func (r *ring) snapshot() []mark {
	end := r.next.Load()
	var begin uint64
	if end > r.n {
		begin = end - r.n
	}
	out := make([]mark, 0, end-begin)
	for i := begin; i < end; i++ {
		out = append(out, r.marks[i%r.n])
	}
	return out
}

type interner struct {
	mu    sync.Mutex
	ids   map[string]int
	names []string
}

var names = interner{ids: map[string]int{}}

func (in *interner) id(name string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[name]; ok {
		return id
	}
	in.ids[name] = len(in.names)
	in.names = append(in.names, name)
	return len(in.names) - 1
}

func (in *interner) all() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]string(nil), in.names...)
}

// speedscope evented format, https://www.speedscope.app/file-format-schema.json
type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // O or C
	At    int64  `json:"at"`   // µs since the first mark
	Frame int    `json:"frame"`
}

// writeSpeedscope converts marks into balanced open/close events. Closes
// that do not match the innermost open scope were cut by the ring and are
// skipped; scopes still open at the end are closed at the last timestamp.
func writeSpeedscope(w io.Writer, marks []mark, frames []string) error {
	if len(marks) == 0 {
		return fmt.Errorf("profiler: no events to dump")
	}
	base := marks[0].at
	var (
		evs   []ssEvent
		stack []int
		last  int64
	)
	for _, m := range marks {
		at := max((m.at-base)/1000, last)
		if m.open {
			stack = append(stack, m.frame)
			evs = append(evs, ssEvent{Type: "O", At: at, Frame: m.frame})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != m.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			evs = append(evs, ssEvent{Type: "C", At: at, Frame: m.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		evs = append(evs, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	if len(evs) == 0 {
		return fmt.Errorf("profiler: no balanced scopes to dump")
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "casement cycles",
			Unit:     "microseconds",
			EndValue: last,
			Events:   evs,
		}},
		Exporter: "casement-profiler",
		Name:     "casement capture",
	}
	for _, n := range frames {
		doc.Shared.Frames = append(doc.Shared.Frames, ssFrame{Name: n})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}
