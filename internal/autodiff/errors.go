package autodiff

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrMissingInput   = errors.New("missing input")
	ErrInvalidOperand = errors.New("invalid operand")
	ErrArgumentCount  = errors.New("wrong number of arguments")
)

// MissingInputError reports a symbol that has no value in the inputs of an
// evaluate or differentiate call.
type MissingInputError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input for symbol %q", e.Name)
}

// Unwrap returns ErrMissingInput.
func (e *MissingInputError) Unwrap() error {
	return ErrMissingInput
}

// OperandError reports an operand that cannot be used to compose an
// expression: a zero Node, a Node of another Graph, a Go value that is not a
// number, or a wrong operand count.
//
// Builders panic with an *OperandError; Lift returns one.
type OperandError struct {
	Op      string // Operation being composed, empty for Lift
	Details string
}

// Error implements the error interface.
func (e *OperandError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("invalid operand for %s: %s", e.Op, e.Details)
	}
	return "invalid operand: " + e.Details
}

// Unwrap returns ErrInvalidOperand.
func (e *OperandError) Unwrap() error {
	return ErrInvalidOperand
}
