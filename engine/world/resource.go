package world

import "reflect"

// SetResource stores a singleton value of type T.
func SetResource[T any](w *World, v T) {
	w.resources[reflect.TypeFor[T]()] = v
}

func Resource[T any](w *World) (T, bool) {
	v, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

func RemoveResource[T any](w *World) bool {
	t := reflect.TypeFor[T]()
	if _, ok := w.resources[t]; !ok {
		return false
	}
	delete(w.resources, t)
	return true
}
