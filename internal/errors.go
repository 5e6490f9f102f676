package internal

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindPhase         ErrorKind = "phase"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
)

// GameError is a user-facing rejection. It never leaves the room in a partial state.
type GameError struct {
	Kind    ErrorKind
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

var (
	ErrMissingName      = &GameError{KindValidation, "name is required"}
	ErrInvalidRoomCode  = &GameError{KindValidation, "room code must be 6 letters or digits"}
	ErrMissingTarget    = &GameError{KindValidation, "vote target is required"}
	ErrNotEnoughPlayers = &GameError{KindValidation, "at least 3 players are needed to start"}
	ErrSelfVote         = &GameError{KindValidation, "you cannot vote for yourself"}

	ErrNotHost = &GameError{KindAuthorization, "only the host can do that"}

	ErrRoundInProgress = &GameError{KindPhase, "a round is already in progress, wait for the next one"}
	ErrAlreadyStarted  = &GameError{KindPhase, "the game has already started"}
	ErrNotInRound      = &GameError{KindPhase, "not available in this phase"}
	ErrVotingNotActive = &GameError{KindPhase, "voting is not in progress"}

	ErrRoomNotFound  = &GameError{KindNotFound, "room does not exist"}
	ErrNotMember     = &GameError{KindNotFound, "you are not in this room"}
	ErrInvalidTarget = &GameError{KindNotFound, "invalid vote target"}

	ErrAlreadyVoted = &GameError{KindConflict, "you have already voted"}
)
