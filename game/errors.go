package game

import (
	"errors"
	"fmt"
)

// IllegalMoveError reports a move whose destination is not among the
// legal captures for the side that tried to play it. It is a recoverable
// user-input condition: the caller re-prompts.
type IllegalMoveError struct {
	Move Move
	Size int
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("move %s by %s is illegal", e.Move.Notation(e.Size), e.Move.Side)
}

// ErrMustPass is returned when a destination move is supplied while the
// side to move has no legal capture anywhere and must pass instead.
var ErrMustPass = errors.New("no legal move available, must pass")

// ErrCannotUndo is returned by UndoMove on a game with no applied moves.
var ErrCannotUndo = errors.New("no move to undo")

// IllegalBoardSizeError reports an unsupported board dimension.
type IllegalBoardSizeError struct {
	Size int
}

func (e *IllegalBoardSizeError) Error() string {
	return fmt.Sprintf("boards of size %d are not possible", e.Size)
}
