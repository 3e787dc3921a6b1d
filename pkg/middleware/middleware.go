package middleware

import (
	"net/http"
	"slices"
)

// Func decorates a handler.
type Func = func(http.Handler) http.Handler

// Stack is an ordered list of middleware. The zero value is ready to use.
type Stack struct {
	funcs []Func
}

// New creates an empty Stack.
func New() *Stack {
	return &Stack{}
}

// Use appends fn. Earlier entries wrap later ones.
func (s *Stack) Use(fn Func) {
	s.funcs = append(s.funcs, fn)
}

// Apply wraps h so the first registered middleware sees the request first.
func (s *Stack) Apply(h http.Handler) http.Handler {
	for _, fn := range slices.Backward(s.funcs) {
		h = fn(h)
	}
	return h
}
