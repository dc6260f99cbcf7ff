package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProvider is matched by every UnknownProviderError.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidParam is matched by every InvalidParamError.
	ErrInvalidParam = errors.New("invalid parameter")
)

// UnknownProviderError is returned when a provider name has no registered implementation.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Name)
}

func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// InvalidParamError reports a parameter value outside its constraint.
type InvalidParamError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid value %q for %s (%s)", e.Value, e.Name, e.Reason)
}

func (e *InvalidParamError) Is(target error) bool {
	return target == ErrInvalidParam
}
