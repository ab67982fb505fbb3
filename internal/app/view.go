package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/dragstream/internal/surface"
)

const (
	minBoxWidth  = 12
	minBoxHeight = 4
	boxTitle     = " drag here "
	menuLabel    = " context menu "
	helpText     = "q quit  c clear"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	statusStyle = tcell.StyleDefault.Reverse(true)
	menuStyle   = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
)

type menuPopup struct {
	x, y int
}

// layout centers the drag surface above the status line.
func (app *Application) layout() {
	w, h := app.screen.Size()
	h-- // status line

	bw := max(w/2, minBoxWidth)
	bh := max(h/2, minBoxHeight)
	app.box.SetBounds(surface.Rect{
		Left:   float64(max((w-bw)/2, 0)),
		Top:    float64(max((h-bh)/2, 0)),
		Width:  float64(bw),
		Height: float64(bh),
	})
}

func (app *Application) draw() {
	s := app.screen
	s.Clear()
	app.drawBox()
	app.trail.Draw(s)
	app.drawStatus()
	if app.menu != nil {
		app.drawMenu()
	}
	s.Show()
}

func (app *Application) drawBox() {
	r := app.box.BoundingClientRect()
	x0, y0 := int(r.Left)-1, int(r.Top)-1
	x1, y1 := int(r.Right()), int(r.Bottom())

	s := app.screen
	for x := x0 + 1; x < x1; x++ {
		s.SetContent(x, y0, tcell.RuneHLine, nil, borderStyle)
		s.SetContent(x, y1, tcell.RuneHLine, nil, borderStyle)
	}
	for y := y0 + 1; y < y1; y++ {
		s.SetContent(x0, y, tcell.RuneVLine, nil, borderStyle)
		s.SetContent(x1, y, tcell.RuneVLine, nil, borderStyle)
	}
	s.SetContent(x0, y0, tcell.RuneULCorner, nil, borderStyle)
	s.SetContent(x1, y0, tcell.RuneURCorner, nil, borderStyle)
	s.SetContent(x0, y1, tcell.RuneLLCorner, nil, borderStyle)
	s.SetContent(x1, y1, tcell.RuneLRCorner, nil, borderStyle)
	drawText(s, x0+2, y0, borderStyle, boxTitle)
}

func (app *Application) drawStatus() {
	w, h := app.screen.Size()
	y := h - 1
	for x := 0; x < w; x++ {
		app.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
	drawText(app.screen, 1, y, statusStyle, app.StatusLine())
	drawText(app.screen, w-uniseg.StringWidth(helpText)-1, y, statusStyle, helpText)
}

// StatusLine describes the drag state and the most recent sample.
func (app *Application) StatusLine() string {
	capture := "window"
	if _, ok := app.box.(interface{ SetCapture() }); ok {
		capture = "native"
	}
	line := fmt.Sprintf("%s  capture:%s  cooldown:%s", app.drag.State(), capture, app.drag.ContextMenuCooldown())
	if s, ok := app.LastSample(); ok {
		line += fmt.Sprintf("  buttons:%s  at:%g,%g  d:%+g,%+g", s.Buttons, s.ClientX, s.ClientY, s.Dx, s.Dy)
	}
	return line
}

func (app *Application) drawMenu() {
	w, h := app.screen.Size()
	width := uniseg.StringWidth(menuLabel)
	x := min(app.menu.x, w-width)
	y := min(app.menu.y, h-2)
	drawText(app.screen, max(x, 0), max(y, 0), menuStyle, menuLabel)
}

// drawText writes text starting at (x, y) one grapheme cluster at a time.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
}
