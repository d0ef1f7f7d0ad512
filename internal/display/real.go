//go:build linux

package display

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

// RealSurface drives an SSD1306 OLED over I2C. Drawing happens into an
// in-memory 1-bit buffer; Present pushes the buffer to the panel.
type RealSurface struct {
	bus    closerBus
	dev    *ssd1306.Dev
	buf    *image1bit.VerticalLSB
	cx, cy int
}

type closerBus interface {
	Close() error
}

// NewRealSurface opens the first available I2C bus and initializes the
// panel. Any failure here is fatal to the caller: the device must not run
// without visible feedback.
func NewRealSurface() (*RealSurface, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306: %w", err)
	}

	return &RealSurface{
		bus: bus,
		dev: dev,
		buf: image1bit.NewVerticalLSB(dev.Bounds()),
	}, nil
}

// Clear erases the buffer.
func (r *RealSurface) Clear() {
	r.buf = image1bit.NewVerticalLSB(r.dev.Bounds())
}

// SetCursor positions the pen for the next DrawText call.
func (r *RealSurface) SetCursor(x, y int) {
	r.cx, r.cy = x, y
}

// DrawText renders s at the cursor. The font is rasterized at scale 1 and
// each lit pixel is replicated into a size-by-size block, which keeps the
// glyph cell exactly GlyphWidth x GlyphHeight times the scale.
func (r *RealSurface) DrawText(s string, size int) {
	if size < 1 {
		size = 1
	}

	w := len(s) * GlyphWidth
	h := GlyphHeight
	mask := image.NewGray(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.GrayAt(x, y).Y < 0x80 {
				continue
			}
			for dy := 0; dy < size; dy++ {
				for dx := 0; dx < size; dx++ {
					r.buf.Set(r.cx+x*size+dx, r.cy+y*size+dy, image1bit.On)
				}
			}
		}
	}
}

// DrawRect draws a one-pixel rectangle outline.
func (r *RealSurface) DrawRect(x, y, w, h int) {
	for i := x; i < x+w; i++ {
		r.buf.Set(i, y, image1bit.On)
		r.buf.Set(i, y+h-1, image1bit.On)
	}
	for j := y; j < y+h; j++ {
		r.buf.Set(x, j, image1bit.On)
		r.buf.Set(x+w-1, j, image1bit.On)
	}
}

// Present flushes the buffer to the panel.
func (r *RealSurface) Present() error {
	if err := r.dev.Draw(r.dev.Bounds(), r.buf, image.Point{}); err != nil {
		return fmt.Errorf("draw ssd1306: %w", err)
	}
	return nil
}

// Close blanks the panel and releases the I2C bus.
func (r *RealSurface) Close() error {
	r.Clear()
	if err := r.dev.Draw(r.dev.Bounds(), r.buf, image.Point{}); err != nil {
		r.bus.Close()
		return fmt.Errorf("blank ssd1306: %w", err)
	}
	return r.bus.Close()
}
