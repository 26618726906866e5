package league

import "errors"

// All failures of the engine are terminal validation errors: every check runs
// before any mutation, so a failed operation leaves no partial state behind.
var (
	ErrNotInitialized     = errors.New("league is not initialized")
	ErrAlreadyInitialized = errors.New("league is already initialized")

	ErrNotAdmin     = errors.New("caller is not the league admin")
	ErrNotTeamOwner = errors.New("caller is not the team owner")

	ErrPlayerNotFound  = errors.New("player not found in roster")
	ErrDuplicatePlayer = errors.New("team players must be distinct")
	ErrTeamNotFound    = errors.New("team not found")

	ErrLengthMismatch     = errors.New("goals and assists vectors differ in length")
	ErrPlayerStatsMissing = errors.New("player stats missing from announced result")

	ErrResultAlreadyAnnounced = errors.New("result has already been announced")
	ErrResultNotAnnounced     = errors.New("result has not been announced yet")
	ErrRewardAlreadyClaimed   = errors.New("reward has already been claimed for this team")
	ErrInsufficientFunds      = errors.New("treasury has insufficient funds for the reward")
)
