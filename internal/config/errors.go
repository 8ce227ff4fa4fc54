package config

import "errors"

// Configuration validation errors, returned by Config.Validate() and the
// loaders so callers can branch with errors.Is().
var (
	// ErrInvalidProfile is returned when the profile name is not a known
	// scoring profile.
	ErrInvalidProfile = errors.New("invalid profile: must be basic or enhanced")

	// ErrInvalidTopK is returned when top_k is negative or not a number.
	// Zero means every label is returned.
	ErrInvalidTopK = errors.New("invalid top_k: must be a non-negative integer")

	// ErrInvalidProbability is returned when a probability or confidence
	// threshold lies outside [0, 1].
	ErrInvalidProbability = errors.New("invalid probability: must be between 0 and 1")

	// ErrInvalidMaxSide is returned when max_side is negative.
	// Zero disables downscaling.
	ErrInvalidMaxSide = errors.New("invalid max_side: must be non-negative")

	// ErrConfigNotFound is returned when an explicitly requested
	// configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
