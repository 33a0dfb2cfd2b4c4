package textfilter

import "errors"

var (
	// ErrUnknownIdentity indicates a filter whose short name cannot be derived.
	ErrUnknownIdentity = errors.New("textfilter: cannot derive short name from identity")
	// ErrFilterNotFound indicates a lookup for an unregistered short name.
	ErrFilterNotFound = errors.New("textfilter: filter not found")
	// ErrMissingDefaultConfig indicates an option that is neither supplied nor defaulted.
	ErrMissingDefaultConfig = errors.New("textfilter: option has no default config")
	// ErrWrongFilterType indicates a filter used in a slot of another type.
	ErrWrongFilterType = errors.New("textfilter: wrong filter type")
	// ErrInputTooLarge indicates text longer than the expander's MaxInput.
	ErrInputTooLarge = errors.New("textfilter: input too large")
)
