package kernel

import (
	"fmt"
	"strings"

	"tasking/internal/pkg/errs"
	"tasking/internal/pkg/guard"
)

// ErrResourceNameIsNotConstructed is returned when attempting to use an
// improperly initialized ResourceName. Resource names must be created via
// the NewResourceName constructor.
var ErrResourceNameIsNotConstructed = errs.NewValueIsRequiredError(
	"resource name must be created via NewResourceName constructor")

// ResourceName identifies an external entity whose tasks must execute
// one-worker-at-a-time. It is an immutable value object in the form
// "type:identifier", for example "repository:zoo".
//
// Two tasks that carry the same ResourceName are never dispatched to
// different workers concurrently; the coordinator serializes them onto the
// worker that currently holds the reservation for the resource.
//
// Example:
//
//	resource, err := kernel.NewResourceName("repository", "zoo")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(resource.String()) // "repository:zoo"
type ResourceName struct { //nolint:recvcheck //using for validation
	kind  string
	ident string
	guard guard.ConstructorGuard
}

// NewResourceName creates a ResourceName from a resource type and an
// identifier. Both parts must be non-empty and must not contain the ':'
// separator or whitespace.
func NewResourceName(kind, ident string) (ResourceName, error) {
	if err := validateResourcePart("resource type", kind); err != nil {
		return ResourceName{}, err
	}
	if err := validateResourcePart("resource identifier", ident); err != nil {
		return ResourceName{}, err
	}

	return ResourceName{
		kind:  kind,
		ident: ident,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ResourceNameFromString parses a "type:identifier" string into a
// ResourceName. Used when reconstructing resources from persistence or
// broker envelopes.
func ResourceNameFromString(s string) (ResourceName, error) {
	kind, ident, found := strings.Cut(s, ":")
	if !found {
		return ResourceName{}, errs.NewValueIsInvalidErrorWithCause(
			"resource name",
			fmt.Errorf("%q is not in type:identifier form", s),
		)
	}
	return NewResourceName(kind, ident)
}

// Kind returns the resource type part of the name.
func (r ResourceName) Kind() string {
	return r.kind
}

// Ident returns the identifier part of the name.
func (r ResourceName) Ident() string {
	return r.ident
}

// String returns the canonical "type:identifier" form.
func (r ResourceName) String() string {
	return r.kind + ":" + r.ident
}

// IsEqual compares two resource names by value.
func (r ResourceName) IsEqual(other ResourceName) bool {
	return r.kind == other.kind && r.ident == other.ident
}

// Validate ensures the ResourceName was created via NewResourceName.
func (r ResourceName) Validate() error {
	return r.guard.Validate(ErrResourceNameIsNotConstructed)
}

func validateResourcePart(paramName, part string) error {
	if part == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	if strings.ContainsAny(part, ": \t\n") {
		return errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("%q must not contain ':' or whitespace", part),
		)
	}
	return nil
}
