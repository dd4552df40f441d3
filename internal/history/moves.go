package history

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type SortOrder uint8

const (
	Ascending SortOrder = iota
	Descending
)

var ErrUnknownSortOrder = errors.New("unknown sort order")

// MoveDescriptor - one row of the move list.
type MoveDescriptor struct {
	Move      int              `json:"move"`
	IsCurrent bool             `json:"is_current"`
	Position  *entity.Position `json:"position,omitempty"`
	Label     string           `json:"label"`
}

// View - everything a renderer needs to draw the game.
type View struct {
	Board       entity.Board     `json:"board"`
	Status      entity.Status    `json:"status"`
	CurrentMove int              `json:"current_move"`
	Order       SortOrder        `json:"order"`
	Moves       []MoveDescriptor `json:"moves"`
}

// DescribeMoves - move list in display order.
// Descending order only reverses the slice, Move keeps the chronological number.
func (that *GameHistory) DescribeMoves() []MoveDescriptor {
	moves := make([]MoveDescriptor, 0, len(that.entries))

	for move := range that.entries {
		descriptor := MoveDescriptor{
			Move:      move,
			IsCurrent: move == that.current,
		}

		if move > 0 {
			if idx, ok := changedCell(that.entries[move-1], that.entries[move]); ok {
				pos := entity.PositionOf(idx)
				descriptor.Position = &pos
			}
		}

		descriptor.Label = moveLabel(move, descriptor.IsCurrent)
		moves = append(moves, descriptor)
	}

	if that.order == Descending {
		slices.Reverse(moves)
	}

	return moves
}

func moveLabel(move int, isCurrent bool) string {
	switch {
	case isCurrent:
		return fmt.Sprintf("You are at move #%d", move)
	case move == 0:
		return "Go to game start"
	default:
		return fmt.Sprintf("Go to move #%d", move)
	}
}

// changedCell - first index where the two boards differ.
func changedCell(prev, next entity.Board) (int, bool) {
	for idx := range next {
		if prev[idx] != next[idx] {
			return idx, true
		}
	}

	return 0, false
}

func (that SortOrder) Toggle() SortOrder {
	if that == Ascending {
		return Descending
	}
	return Ascending
}

func (that SortOrder) String() string {
	if that == Descending {
		return "desc"
	}
	return "asc"
}

func (that SortOrder) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *SortOrder) UnmarshalText(text []byte) error {
	switch string(text) {
	case "asc":
		*that = Ascending
	case "desc":
		*that = Descending
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSortOrder, text)
	}

	return nil
}
