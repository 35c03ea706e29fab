// Package guard implements the constructor-guard pattern used by domain
// objects and commands to reject zero-value instances that bypassed their
// constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// error is provided for a zero-value object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects created through their designated
// constructor from zero values. Embed it in a struct and set it via
// NewConstructorGuard inside the constructor; Validate then fails for any
// instance that was created by direct struct initialization.
//
// Example:
//
//	type EnqueueTaskCommand struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewEnqueueTaskCommand(name string) (EnqueueTaskCommand, error) {
//	    return EnqueueTaskCommand{name: name, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c *EnqueueTaskCommand) Validate() error {
//	    return c.guard.Validate(ErrEnqueueTaskCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for properly constructed objects. For zero values
// it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
