// Package display renders frames onto a small bitmap display.
// The real implementation drives an SSD1306 OLED over I2C.
// The fake implementation allows testing without hardware.
package display

// Surface is a retained-mode drawing surface flushed explicitly with
// Present. Coordinates are pixels with the origin at the top left.
type Surface interface {
	// Clear erases the whole buffer.
	Clear()

	// SetCursor positions the pen for the next DrawText call.
	SetCursor(x, y int)

	// DrawText draws s at the cursor with an integer scale factor.
	DrawText(s string, size int)

	// DrawRect draws a one-pixel rectangle outline.
	DrawRect(x, y, w, h int)

	// Present flushes the buffer to the panel.
	Present() error

	// Close releases display resources.
	Close() error
}

// Panel geometry for the stock 0.96" SSD1306 module.
const (
	DefaultWidth  = 128
	DefaultHeight = 64
)

// Glyph cell of the fixed-width font at scale 1.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)
