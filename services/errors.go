package services

import "errors"

// Shared sentinel errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules.
	ErrValidationFailed     = errors.New("validation failed")
	ErrInvalidDateFormat    = errors.New("date fields must be RFC3339 timestamps")
	ErrEventMissingFields   = errors.New("missing required fields: name, sportId, organizerId, venue, startDate, endDate, registrationDeadline, maxTeams")
	ErrEventInvalidCapacity = errors.New("event maxTeams must be positive")
	ErrMatchMissingFields   = errors.New("missing required fields: eventId, homeTeamId, awayTeamId, venue, scheduledAt")
	ErrMatchSameTeam        = errors.New("home team and away team cannot be the same")
	ErrTeamMissingFields    = errors.New("team name and sport are required")
	ErrUserMissingFields    = errors.New("missing required fields: email, username, password, firstName, lastName")
	ErrRegistrationNotOpen  = errors.New("event registration is not open")
	ErrEventFull            = errors.New("event has reached its maximum number of teams")

	// Conflicts. The message names the offending field.
	ErrSportNameConflict    = errors.New("sport with this name already exists")
	ErrUserEmailConflict    = errors.New("user with this email already exists")
	ErrUserUsernameConflict = errors.New("user with this username already exists")
	ErrRegistrationConflict = errors.New("team is already registered for this event")
	ErrTeamMemberConflict   = errors.New("user is already a member of this team")
	ErrStatisticConflict    = errors.New("statistic for this player already exists for the match")

	// Entity-specific not-found errors for more context than ErrNotFound.
	ErrSportNotFound        = errors.New("sport not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrRegistrationNotFound = errors.New("event registration not found")

	// Invalid cross-entity references surfaced by foreign keys.
	ErrInvalidSportReference = errors.New("referenced sport does not exist")
	ErrInvalidTeamReference  = errors.New("referenced team does not exist")
	ErrInvalidUserReference  = errors.New("referenced user does not exist")
	ErrInvalidEventReference = errors.New("referenced event does not exist")

	// Media uploads require a configured object store.
	ErrMediaStorageUnavailable = errors.New("media storage is not configured")

	// Deletion blocked by dependent rows.
	ErrSportInUse = errors.New("sport cannot be deleted while teams or events reference it")
	ErrTeamInUse  = errors.New("team cannot be deleted while registrations or matches reference it")
	ErrEventInUse = errors.New("event cannot be deleted while dependent records reference it")
)
