package types

import "github.com/google/uuid"

// ProcessUserActionCommand asks a processor to paint one pixel.
type ProcessUserActionCommand struct {
	GameID uuid.UUID `json:"gameId"`
	XIndex int       `json:"x"`
	YIndex int       `json:"y"`
	Pixel  Pixel     `json:"pixel"`
}

// PendingAction is an accepted placement. Version stays nil while the action is pending
// and is set once the batch holding it is committed.
type PendingAction struct {
	GameID  uuid.UUID `json:"gameId"`
	XIndex  int       `json:"x"`
	YIndex  int       `json:"y"`
	Pixel   Pixel     `json:"pixel"`
	Version *int64    `json:"version,omitempty"`
}

// NewPendingAction records an accepted command.
func NewPendingAction(cmd ProcessUserActionCommand) PendingAction {
	return PendingAction{
		GameID: cmd.GameID,
		XIndex: cmd.XIndex,
		YIndex: cmd.YIndex,
		Pixel:  cmd.Pixel,
	}
}

// ErrorCode identifies why a placement was rejected.
type ErrorCode string

const (
	ErrorCodeOutOfBounds    ErrorCode = "out_of_bounds"
	ErrorCodeCanvasMismatch ErrorCode = "canvas_mismatch"
)

// ErrorDescriptor describes a single validation failure.
type ErrorDescriptor struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ProcessUserActionResult is either a success or a validation failure
// carrying at least one ErrorDescriptor. A failed result never has side effects.
type ProcessUserActionResult struct {
	Succeeded bool              `json:"succeeded"`
	Errors    []ErrorDescriptor `json:"errors"`
}

// Success is the result of an applied placement.
func Success() ProcessUserActionResult {
	return ProcessUserActionResult{
		Succeeded: true,
		Errors:    []ErrorDescriptor{},
	}
}

// ValidationFailure is the result of a rejected placement.
func ValidationFailure(errs ...ErrorDescriptor) ProcessUserActionResult {
	return ProcessUserActionResult{
		Succeeded: false,
		Errors:    errs,
	}
}
