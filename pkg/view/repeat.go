package view

import "strings"

// Repeat renders one subtree per element of a fixed sequence, in input
// order.
type Repeat[T any] struct {
	elements []T
	build    func(int, T) Renderable
}

// ForEach maps build over elements. The index passed to build is the
// zero-based position in elements.
func ForEach[T any](elements []T, build func(index int, element T) Renderable) Repeat[T] {
	return Repeat[T]{elements: elements, build: build}
}

// Len reports the number of elements.
func (r Repeat[T]) Len() int {
	return len(r.elements)
}

// Render concatenates build(i, elements[i]) for every element.
func (r Repeat[T]) Render() (string, error) {
	if r.build == nil {
		return "", nil
	}

	var sb strings.Builder
	for i, element := range r.elements {
		if err := write(&sb, r.build(i, element)); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
