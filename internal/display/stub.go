//go:build !linux

package display

import "errors"

// RealSurface is not available on non-Linux platforms.
type RealSurface struct{}

// NewRealSurface returns an error on non-Linux platforms.
func NewRealSurface() (*RealSurface, error) {
	return nil, errors.New("display: not supported on this platform (requires Linux)")
}

// Clear is not implemented on non-Linux platforms.
func (r *RealSurface) Clear() {}

// SetCursor is not implemented on non-Linux platforms.
func (r *RealSurface) SetCursor(x, y int) {}

// DrawText is not implemented on non-Linux platforms.
func (r *RealSurface) DrawText(s string, size int) {}

// DrawRect is not implemented on non-Linux platforms.
func (r *RealSurface) DrawRect(x, y, w, h int) {}

// Present is not implemented on non-Linux platforms.
func (r *RealSurface) Present() error {
	return errors.New("display: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealSurface) Close() error {
	return nil
}
