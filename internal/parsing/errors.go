package parsing

import "fmt"

// InputTooLargeError is returned when raw text exceeds the configured length ceiling
type InputTooLargeError struct {
	Length int // Rune length of the rejected input
	Limit  int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("input too large: %d characters exceeds limit of %d", e.Length, e.Limit)
}
