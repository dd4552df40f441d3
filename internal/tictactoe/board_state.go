package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// Status - derives the game status of a board.
func Status(board entity.Board) entity.Status {
	if line, ok := FindWinningLine(board); ok {
		return entity.Status{
			Kind:   entity.StatusWinner,
			Winner: board[line[0]],
			Line:   &line,
		}
	}

	if board.IsFull() {
		return entity.Status{Kind: entity.StatusDraw}
	}

	return entity.Status{
		Kind: entity.StatusNextPlayer,
		Next: MarkForMove(board.Count()),
	}
}

// MarkForMove - X moves on even move counts, O on odd ones.
func MarkForMove(move int) entity.Cell {
	if move%2 == 0 {
		return entity.X
	}
	return entity.O
}

// ApplyMove - returns a copy of the board with mark placed at index.
func ApplyMove(board entity.Board, index int, mark entity.Cell) (entity.Board, error) {
	if err := validateMove(board, index, mark); err != nil {
		return board, err
	}

	board[index] = mark

	return board, nil
}

// validateMove - checks that the move can be placed on the board.
func validateMove(board entity.Board, index int, mark entity.Cell) error {
	if index < 0 || index >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d is outside the board", apperror.ErrIllegalMove, index)
	}

	if mark != entity.X && mark != entity.O {
		return fmt.Errorf("%w: mark %d cannot be placed", apperror.ErrIllegalMove, mark)
	}

	if _, ok := FindWinningLine(board); ok {
		return fmt.Errorf("%w: game is already won", apperror.ErrIllegalMove)
	}

	if board[index] != entity.Empty {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrIllegalMove, index)
	}

	return nil
}
