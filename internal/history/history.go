// Package history keeps the board snapshots of one game and the pointer used to travel
// between them.
package history

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

// GameHistory - ordered board snapshots, the current move and the move list order.
type GameHistory struct {
	entries []entity.Board
	current int
	order   SortOrder
}

// New - history holding only the empty starting board.
func New() *GameHistory {
	return &GameHistory{
		entries: []entity.Board{{}},
		current: 0,
		order:   Ascending,
	}
}

// Play - places the mark of the side to move on the current board.
// Moves after the current one are discarded before the new board is appended.
func (that *GameHistory) Play(cell int) error {
	mark := tictactoe.MarkForMove(that.current)

	next, err := tictactoe.ApplyMove(that.entries[that.current], cell, mark)
	if err != nil {
		return err
	}

	that.entries = append(that.entries[:that.current+1:that.current+1], next)
	that.current = len(that.entries) - 1

	return nil
}

// JumpTo - moves the current pointer; the entries never change.
func (that *GameHistory) JumpTo(move int) error {
	if move < 0 || move >= len(that.entries) {
		return fmt.Errorf("%w: move %d, history has %d entries", apperror.ErrOutOfRange, move, len(that.entries))
	}

	that.current = move

	return nil
}

// ToggleSort - flips the move list order.
func (that *GameHistory) ToggleSort() {
	that.order = that.order.Toggle()
}

func (that *GameHistory) Board() entity.Board {
	return that.entries[that.current]
}

func (that *GameHistory) Status() entity.Status {
	return tictactoe.Status(that.Board())
}

func (that *GameHistory) CurrentMove() int {
	return that.current
}

func (that *GameHistory) Len() int {
	return len(that.entries)
}

func (that *GameHistory) Order() SortOrder {
	return that.order
}

// View - presentation snapshot of the current state.
func (that *GameHistory) View() View {
	return View{
		Board:       that.Board(),
		Status:      that.Status(),
		CurrentMove: that.current,
		Order:       that.order,
		Moves:       that.DescribeMoves(),
	}
}
