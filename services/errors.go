package services

import "errors"

// Shared errors used across services and the HTTP mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed = errors.New("validation failed")
	ErrPasswordTooShort = errors.New("password is too short")

	// Catalog
	ErrLeagueNotFound     = errors.New("league not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrPlayerNameRequired = errors.New("player name is required")

	// Sessions and lineup
	ErrSessionNotFound         = errors.New("analysis session not found")
	ErrLineupFull              = errors.New("starting lineup is full (11 players maximum)")
	ErrLineupEmpty             = errors.New("starting lineup must have at least one player")
	ErrPlayerNotInLineup       = errors.New("player is not part of the current lineup")
	ErrPlayerAlreadyStarting   = errors.New("player is already in the starting lineup")
	ErrInvalidTacticalPosition = errors.New("unknown tactical position")
	ErrInvalidHalf             = errors.New("invalid match period")
	ErrNoVideoAttached         = errors.New("no video attached to this session")

	// Tagging
	ErrUnknownEventType   = errors.New("unknown event type")
	ErrDraftNotFound      = errors.New("no event draft in progress for this category")
	ErrUnexpectedStep     = errors.New("selection does not match the draft's current step")
	ErrSelectionRequired  = errors.New("a selection is required to continue")
	ErrInvalidSelection   = errors.New("selection is not one of the offered options")
	ErrReceiverIsPasser   = errors.New("receiver must differ from the passing player")
	ErrEventNotFound      = errors.New("event not found")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
)
