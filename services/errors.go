package services

import "errors"

// Shared errors used across services and the HTTP mapping.
var (
	// Validation and business rules
	ErrValidationFailed = errors.New("validation failed")
	ErrSameTeams        = errors.New("team 1 and team 2 must be different")
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// Conflicts
	ErrEmailTaken               = errors.New("user already exists with this email")
	ErrPlayerAlreadyInTeam      = errors.New("player is already in the team")
	ErrTeamAlreadyInTournament  = errors.New("team is already in this tournament")
	ErrMatchAlreadyInTournament = errors.New("match is already in this tournament")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Missing targets
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")

	// Logo storage is optional at deploy time.
	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")
)
