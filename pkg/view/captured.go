package view

import (
	"encoding/json"
	"fmt"
)

// Captured is a subtree rendered once at construction. It is immutable and
// safe to share between goroutines.
//
// Captured is the type of slot fields on host structs. Two values are equal
// when their rendered strings are equal.
type Captured struct {
	rendered string
}

// Empty and One are two distinguishable captured values. Field path
// resolution uses them as the example pair for Captured fields.
var (
	Empty = MustCapture(Text("0"))
	One   = MustCapture(Text("1"))
)

// Capture renders r immediately and stores the result.
func Capture(r Renderable) (Captured, error) {
	rendered, err := Render(r)
	if err != nil {
		return Captured{}, fmt.Errorf("capture view: %w", err)
	}
	return Captured{rendered: rendered}, nil
}

// MustCapture is like Capture but panics if rendering fails.
func MustCapture(r Renderable) Captured {
	c, err := Capture(r)
	if err != nil {
		panic(err)
	}
	return c
}

// Render returns the captured markup. It never fails.
func (c Captured) Render() (string, error) {
	return c.rendered, nil
}

// String returns the captured markup.
func (c Captured) String() string {
	return c.rendered
}

// Equal reports whether both values captured the same markup.
func (c Captured) Equal(other Captured) bool {
	return c.rendered == other.rendered
}

// ReflectExamples returns the example pair used by field path resolution.
func (Captured) ReflectExamples() (left, right any) {
	return Empty, One
}

// MarshalJSON encodes the captured markup as a JSON string.
func (c Captured) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.rendered)
}

// UnmarshalJSON decodes a JSON string into captured markup.
func (c *Captured) UnmarshalJSON(data []byte) error {
	var rendered string
	if err := json.Unmarshal(data, &rendered); err != nil {
		return fmt.Errorf("decode captured view: %w", err)
	}
	c.rendered = rendered
	return nil
}
