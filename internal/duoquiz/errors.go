package duoquiz

import "errors"

// Validation errors returned synchronously to the calling client action.
// Every rejected operation leaves the game document unchanged.
var (
	ErrNotFound             = errors.New("not found")
	ErrGameFull             = errors.New("game is full")
	ErrAlreadyJoined        = errors.New("player already joined")
	ErrNotHost              = errors.New("only the host may do this")
	ErrInsufficientPlayers  = errors.New("two players required")
	ErrNotAllReady          = errors.New("not all players are ready")
	ErrWrongGameMode        = errors.New("operation not valid for this game mode")
	ErrDuplicateSubmission  = errors.New("already answered this question")
	ErrPartnerNotAnswered   = errors.New("partner has not answered yet")
	ErrAlreadyAnswered      = errors.New("question already answered")
	ErrAlreadyJudged        = errors.New("answer already judged")
	ErrInvalidJudgment      = errors.New("judgment must be correct, almost or incorrect")
	ErrNotAuthorized        = errors.New("player not allowed to perform this action")
	ErrGameNotActive        = errors.New("game is not in progress")
	ErrAlreadyStarted       = errors.New("game already started")
	ErrQuestionLimitReached = errors.New("question limit reached")
	ErrNotYourTurnToAsk     = errors.New("waiting on the other player before asking again")
)
