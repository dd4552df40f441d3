package entity

import (
	"errors"
	"fmt"
)

// Cell - one square of the board.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

const (
	BoardSize = 9
	RowSize   = 3
)

var ErrUnknownCell = errors.New("unknown cell value")

// Board - 3x3 grid stored row-major, index = row*3 + col.
type Board [BoardSize]Cell

// Line - three board indices that win when identically marked.
type Line [3]int

// Position - row and column of a board index.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionOf - converts a board index to its row and column.
func PositionOf(index int) Position {
	return Position{Row: index / RowSize, Col: index % RowSize}
}

func (that Position) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

func (that Cell) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = Empty
	case "X":
		*that = X
	case "O":
		*that = O
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCell, text)
	}

	return nil
}

// Count - number of marked cells.
func (that Board) Count() int {
	count := 0
	for _, cell := range that {
		if cell != Empty {
			count++
		}
	}

	return count
}

// IsFull - true when no Empty cell remains.
func (that Board) IsFull() bool {
	return that.Count() == BoardSize
}

func (that Board) String() string {
	out := make([]byte, 0, BoardSize+RowSize)
	for i, cell := range that {
		if i > 0 && i%RowSize == 0 {
			out = append(out, '/')
		}
		if cell == Empty {
			out = append(out, '.')
			continue
		}
		out = append(out, cell.String()...)
	}

	return string(out)
}
