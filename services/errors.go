package services

import "errors"

// Shared sentinels, mapped to HTTP statuses by the handler layer.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrInvalidMode           = errors.New("unknown matching mode")
	ErrInvalidTeamSize       = errors.New("team size must be at least 2")
	ErrInvalidInterestWeight = errors.New("interest weight must not be negative")
	ErrNoParticipants        = errors.New("no participants available for matching")
	ErrEmptySurvey           = errors.New("survey contains no usable responses")

	ErrRunNotFound         = errors.New("match run not found")
	ErrParticipantNotFound = errors.New("participant not found")

	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
)
