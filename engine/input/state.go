package input

// ButtonInput tracks which buttons are held and which changed during the
// current update.
type ButtonInput[T comparable] struct {
	pressed      map[T]bool
	justPressed  map[T]bool
	justReleased map[T]bool
}

func NewButtonInput[T comparable]() *ButtonInput[T] {
	return &ButtonInput[T]{
		pressed:      map[T]bool{},
		justPressed:  map[T]bool{},
		justReleased: map[T]bool{},
	}
}

func (b *ButtonInput[T]) Press(v T) {
	if !b.pressed[v] {
		b.justPressed[v] = true
	}
	b.pressed[v] = true
}

func (b *ButtonInput[T]) Release(v T) {
	if b.pressed[v] {
		b.justReleased[v] = true
	}
	delete(b.pressed, v)
}

func (b *ButtonInput[T]) Pressed(v T) bool      { return b.pressed[v] }
func (b *ButtonInput[T]) JustPressed(v T) bool  { return b.justPressed[v] }
func (b *ButtonInput[T]) JustReleased(v T) bool { return b.justReleased[v] }

// Clear forgets the just-pressed/released edges; call once per update.
func (b *ButtonInput[T]) Clear() {
	clear(b.justPressed)
	clear(b.justReleased)
}

// Reset releases everything, e.g. when focus is lost.
func (b *ButtonInput[T]) Reset() {
	clear(b.pressed)
	b.Clear()
}

// State is the keyboard and mouse button state seen by application logic.
type State struct {
	Keys  *ButtonInput[KeyCode]
	Mouse *ButtonInput[MouseButton]
}

func NewState() *State {
	return &State{Keys: NewButtonInput[KeyCode](), Mouse: NewButtonInput[MouseButton]()}
}

// Apply clears last update's edges and folds in the new events.
func (s *State) Apply(evs []any) {
	s.Keys.Clear()
	s.Mouse.Clear()
	for _, ev := range evs {
		switch e := ev.(type) {
		case KeyboardInput:
			if e.Key == KeyUnknown {
				continue
			}
			if e.State.IsPressed() {
				s.Keys.Press(e.Key)
			} else {
				s.Keys.Release(e.Key)
			}
		case MouseButtonInput:
			if e.State.IsPressed() {
				s.Mouse.Press(e.Button)
			} else {
				s.Mouse.Release(e.Button)
			}
		}
	}
}
