// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidCategory is returned when a prompt category is not one of
	// the known categories.
	ErrInvalidCategory = errors.New("invalid prompt category")

	// ErrInvalidActivityType is returned when a prompt activity type is not
	// one of speaking, action or sensory.
	ErrInvalidActivityType = errors.New("invalid activity type")

	// ErrInvalidArtifactType is returned when an artifact type is not valid.
	ErrInvalidArtifactType = errors.New("invalid artifact type")

	// ErrInvalidMediaType is returned when a media type is not valid.
	ErrInvalidMediaType = errors.New("invalid media type")

	// ErrInvalidTemplate is returned when a session template is not valid.
	ErrInvalidTemplate = errors.New("invalid session template")

	// ErrInvalidPhase is returned when a journey phase is not valid.
	ErrInvalidPhase = errors.New("invalid journey phase")
)
