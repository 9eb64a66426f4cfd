package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration   = errors.New("invalid game configuration")
	ErrDuplicateMarks  = fmt.Errorf("%w: players must use distinct marks", ErrConfiguration)
	ErrInvalidMark     = fmt.Errorf("%w: invalid mark", ErrConfiguration)
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidPosition = errors.New("invalid board position")
	ErrNotANumber      = errors.New("position is not a number")
	ErrInputTooLong    = errors.New("input line is too long")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrUnknownPlayer   = errors.New("player is not registered in this game")
	ErrMarkMismatch    = errors.New("mark does not belong to player")
	ErrRoundFinished   = errors.New("round is already finished")
	ErrPlayerNotFound  = errors.New("player not found")
)
