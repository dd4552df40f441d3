package history

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

var errBoardUnchanged = errors.New("board did not change")

// Snapshot - detached copy of a GameHistory, safe to store and share.
type Snapshot struct {
	Entries []entity.Board `json:"entries"`
	Current int            `json:"current"`
	Order   SortOrder      `json:"order"`
}

func (that *GameHistory) Snapshot() Snapshot {
	entries := make([]entity.Board, len(that.entries))
	copy(entries, that.entries)

	return Snapshot{
		Entries: entries,
		Current: that.current,
		Order:   that.order,
	}
}

// Restore - rebuilds a GameHistory from a snapshot, rejecting histories that
// could not have been reached by legal play.
func Restore(snapshot Snapshot) (*GameHistory, error) {
	if len(snapshot.Entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", apperror.ErrCorruptHistory)
	}

	if snapshot.Entries[0] != (entity.Board{}) {
		return nil, fmt.Errorf("%w: first entry is not the empty board", apperror.ErrCorruptHistory)
	}

	for move := 1; move < len(snapshot.Entries); move++ {
		if err := validateStep(snapshot.Entries[move-1], snapshot.Entries[move], move-1); err != nil {
			return nil, fmt.Errorf("%w: move %d: %w", apperror.ErrCorruptHistory, move, err)
		}
	}

	if snapshot.Current < 0 || snapshot.Current >= len(snapshot.Entries) {
		return nil, fmt.Errorf("%w: current move %d of %d entries", apperror.ErrCorruptHistory, snapshot.Current, len(snapshot.Entries))
	}

	if snapshot.Order != Ascending && snapshot.Order != Descending {
		return nil, fmt.Errorf("%w: sort order %d", apperror.ErrCorruptHistory, snapshot.Order)
	}

	entries := make([]entity.Board, len(snapshot.Entries))
	copy(entries, snapshot.Entries)

	return &GameHistory{
		entries: entries,
		current: snapshot.Current,
		order:   snapshot.Order,
	}, nil
}

// validateStep - next must be prev with exactly one more mark, played by the side to move.
func validateStep(prev, next entity.Board, move int) error {
	idx, ok := changedCell(prev, next)
	if !ok {
		return errBoardUnchanged
	}

	expected, err := tictactoe.ApplyMove(prev, idx, tictactoe.MarkForMove(move))
	if err != nil {
		return err
	}

	if expected != next {
		return fmt.Errorf("board %s does not follow %s", next, prev)
	}

	return nil
}
