package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	keyHelp        = "1-9 play · ↑/↓ select · enter jump · s sort · n new · q quit"
	decidedKeyHelp = "↑/↓ select · enter jump · s sort · n new · q quit"
)

func (that Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tic-tac-toe"))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(that.session.Status.Label()))
	b.WriteString("\n\n")

	decided := that.session.Status.IsDecided()

	board := boardStyle.Render(renderBoard(that.session.Board, that.session.Status.Line, decided))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "   ", that.renderMoves()))
	b.WriteString("\n\n")

	if that.failure != "" {
		b.WriteString(failureStyle.Render(that.failure))
		b.WriteString("\n")
	}

	help := keyHelp
	if decided {
		help = decidedKeyHelp
	}
	b.WriteString(hintStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

// renderBoard - empty cells show the key that plays them until the game is decided.
func renderBoard(board entity.Board, line *entity.Line, decided bool) string {
	winning := make(map[int]bool, len(entity.Line{}))
	if line != nil {
		for _, idx := range line {
			winning[idx] = true
		}
	}

	rows := make([]string, 0, 2*entity.RowSize-1)
	for row := 0; row < entity.RowSize; row++ {
		cells := make([]string, 0, entity.RowSize)
		for col := 0; col < entity.RowSize; col++ {
			idx := row*entity.RowSize + col
			cells = append(cells, renderCell(idx, board[idx], winning[idx], decided))
		}

		if row > 0 {
			rows = append(rows, "───┼───┼───")
		}
		rows = append(rows, strings.Join(cells, "│"))
	}

	return strings.Join(rows, "\n")
}

func renderCell(idx int, cell entity.Cell, winning, decided bool) string {
	switch {
	case cell == entity.Empty && decided:
		return "   "
	case cell == entity.Empty:
		return hintStyle.Render(" " + strconv.Itoa(idx+1) + " ")
	}

	text := " " + cell.String() + " "
	if winning {
		return winStyle.Render(text)
	}

	return markStyle.Render(text)
}

func (that Model) renderMoves() string {
	lines := make([]string, 0, len(that.session.Moves))

	for idx, move := range that.session.Moves {
		prefix := "  "
		if idx == that.cursor {
			prefix = "> "
		}

		text := move.Label
		if move.Position != nil {
			text += " " + move.Position.String()
		}

		if move.IsCurrent {
			text = currentMoveStyle.Render(text)
		}

		lines = append(lines, prefix+text)
	}

	return strings.Join(lines, "\n")
}
