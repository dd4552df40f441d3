package tictactoe

import "github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"

// WinLines - rows, columns and diagonals in the order they are checked.
var WinLines = [8]entity.Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// FindWinningLine - returns the first line holding three identical marks.
func FindWinningLine(board entity.Board) (entity.Line, bool) {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.Empty && a == b && b == c {
			return line, true
		}
	}

	return entity.Line{}, false
}
