package clcdk

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the kind of errors caused by malformed or missing configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrReference is the kind of errors caused by referencing a node that is not (yet) built, or
	// is of the wrong type.
	ErrReference = errors.New("reference error")
	// ErrLookup is the kind of errors caused by an image or zone lookup without a match.
	ErrLookup = errors.New("lookup error")
	// ErrProvisioning is the kind of errors that originate from the engine the graph is handed to.
	ErrProvisioning = errors.New("provisioning error")
)

// Error is returned by the builder. It names the node that caused it and the constraint it
// violated. Use errors.Is with one of the Err* kinds to tell them apart.
type Error struct {
	Kind       error
	Name       string
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: %s: %s", e.Kind, e.Name, e.Constraint)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap allows errors.Is to match both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func configErr(name, constraint string, err error) *Error {
	return &Error{Kind: ErrConfiguration, Name: name, Constraint: constraint, Err: err}
}

func referenceErr(name, constraint string) *Error {
	return &Error{Kind: ErrReference, Name: name, Constraint: constraint}
}

func lookupErr(name, constraint string, err error) *Error {
	return &Error{Kind: ErrLookup, Name: name, Constraint: constraint, Err: err}
}

// ProvisioningErr wraps an error reported by the provisioning engine. It is surfaced verbatim.
func ProvisioningErr(name string, err error) error {
	return &Error{Kind: ErrProvisioning, Name: name, Constraint: "rejected by the provisioning engine", Err: err}
}
