package generation

import "errors"

// Common errors returned by completion providers.
var (
	// ErrInvalidConfig is returned when a provider is constructed with an
	// unusable configuration, most notably a missing credential.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrInvalidResponse is returned when the provider answers but the
	// response carries no usable content.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrNoResponse is returned after the configured number of attempts all
	// failed with transient errors.
	ErrNoResponse = errors.New("no response from language model")
)
