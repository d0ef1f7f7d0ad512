package display

import "github.com/sweeney/recirc-alarm/internal/logic"

// Text scale factors: the temperature is the main readout, fault text is
// small enough that both lines fit inside the border.
const (
	tempTextSize  = 2
	faultTextSize = 1
	faultLineGap  = 6
)

// Screen lays frames out on a Surface of known pixel dimensions. All
// centering math lives here so it can be tested against a fake surface.
type Screen struct {
	surface Surface
	width   int
	height  int
}

// NewScreen creates a screen for a surface of the given pixel size.
func NewScreen(surface Surface, width, height int) *Screen {
	return &Screen{
		surface: surface,
		width:   width,
		height:  height,
	}
}

// Show draws one frame. Retain frames do nothing at all: no clear, no
// redraw, no flush, so whatever was last drawn stays put.
func (s *Screen) Show(frame logic.Frame) error {
	switch frame.Kind {
	case logic.FrameTemperature:
		s.surface.Clear()
		s.drawBorder()
		x := (s.width - GlyphWidth*tempTextSize*len(frame.Text)) / 2
		y := (s.height - GlyphHeight*tempTextSize) / 2
		s.surface.SetCursor(x, y)
		s.surface.DrawText(frame.Text, tempTextSize)
		return s.surface.Present()

	case logic.FrameFault:
		s.surface.Clear()
		s.drawBorder()
		lineHeight := GlyphHeight * faultTextSize
		block := len(frame.Lines)*lineHeight + (len(frame.Lines)-1)*faultLineGap
		y := (s.height - block) / 2
		for _, line := range frame.Lines {
			x := (s.width - GlyphWidth*faultTextSize*len(line)) / 2
			s.surface.SetCursor(x, y)
			s.surface.DrawText(line, faultTextSize)
			y += lineHeight + faultLineGap
		}
		return s.surface.Present()
	}

	// FrameRetain (and anything unknown) leaves the panel untouched.
	return nil
}

// drawBorder draws the decorative frame around the full display bounds.
func (s *Screen) drawBorder() {
	s.surface.DrawRect(0, 0, s.width, s.height)
}
