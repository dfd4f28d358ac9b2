package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Lines of the final tally, shared by every host.
const GameOverTitle = "GAME OVER"

// KillSummary is the line under GameOverTitle.
func KillSummary(kills int) string {
	return fmt.Sprintf("YOU KILLED: %d ENEMIES", kills)
}

// DrawHUD renders the kill counter on the top row and shows the frame.
// loading adds a banner while the world mesh is still on its way.
func (r *Renderer) DrawHUD(kills int, loading bool) {
	cols, _ := r.screen.Size()
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, 0, ' ', nil, bg)
	}

	text := fmt.Sprintf("ENEMIES KILLED: %d", kills)
	end := r.drawText(1, 0, text, bg.Foreground(ColorKills).Bold(true))

	if loading {
		r.drawText(end+3, 0, "Loading world...", bg.Foreground(ColorLoading))
	}
	r.screen.Show()
}

// DrawGameOver replaces the whole screen with the final tally.
func (r *Renderer) DrawGameOver(kills int) {
	r.screen.Clear()
	_, rows := r.screen.Size()
	mid := rows / 2

	r.drawCentered(mid-2, GameOverTitle, tcell.StyleDefault.Foreground(ColorGameOver).Bold(true))
	r.drawCentered(mid, KillSummary(kills), tcell.StyleDefault.Foreground(ColorKills))
	r.drawCentered(mid+2, "[any key]", tcell.StyleDefault.Foreground(ColorHint))
	r.screen.Show()
}

func (r *Renderer) drawCentered(y int, text string, style tcell.Style) {
	cols, _ := r.screen.Size()
	x := (cols - runewidth.StringWidth(text)) / 2
	r.drawText(max(x, 0), y, text, style)
}

// drawText writes text starting at column x and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
	return col
}
