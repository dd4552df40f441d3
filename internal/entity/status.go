package entity

import (
	"errors"
	"fmt"
)

type StatusKind uint8

const (
	StatusNextPlayer StatusKind = iota
	StatusWinner
	StatusDraw
)

var ErrUnknownStatus = errors.New("unknown game status")

// Status - derived state of a board: who moves next, who won, or a draw.
type Status struct {
	Kind   StatusKind `json:"kind"`
	Next   Cell       `json:"next,omitempty"`
	Winner Cell       `json:"winner,omitempty"`
	Line   *Line      `json:"line,omitempty"`
}

func (that Status) IsDecided() bool {
	return that.Kind == StatusWinner || that.Kind == StatusDraw
}

// Label - status line shown above the board.
func (that Status) Label() string {
	switch that.Kind {
	case StatusWinner:
		return "Winner: " + that.Winner.String()
	case StatusDraw:
		return "Draw"
	default:
		return "Next player: " + that.Next.String()
	}
}

func (that StatusKind) String() string {
	switch that {
	case StatusWinner:
		return "winner"
	case StatusDraw:
		return "draw"
	default:
		return "next_player"
	}
}

func (that StatusKind) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *StatusKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "next_player":
		*that = StatusNextPlayer
	case "winner":
		*that = StatusWinner
	case "draw":
		*that = StatusDraw
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, text)
	}

	return nil
}
