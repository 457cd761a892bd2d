package composer

import "errors"

var (
	// ErrConfigurationMissing is returned when the credential for delegated
	// generation is absent. Local composition is unaffected.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrExternalGenerationFailure wraps any failure of the text-generation
	// service, including an empty completion.
	ErrExternalGenerationFailure = errors.New("external generation failure")

	ErrUnknownMode = errors.New("unknown compose mode")
)
