package forms

import "slices"

// handlerList is an ordered list of subscribers fired synchronously in
// subscription order. Handlers added while firing run from the next fire.
type handlerList[T any] struct {
	fns []func(T)
}

func (l *handlerList[T]) add(fn func(T)) {
	if fn != nil {
		l.fns = append(l.fns, fn)
	}
}

func (l *handlerList[T]) fire(v T) {
	for _, fn := range slices.Clone(l.fns) {
		fn(v)
	}
}

func (l *handlerList[T]) len() int { return len(l.fns) }

// signalList is a handlerList for notifications that carry no value.
type signalList struct {
	fns []func()
}

func (l *signalList) add(fn func()) {
	if fn != nil {
		l.fns = append(l.fns, fn)
	}
}

func (l *signalList) fire() {
	for _, fn := range slices.Clone(l.fns) {
		fn()
	}
}
