package display

// OpKind identifies a recorded surface operation.
type OpKind string

const (
	OpClear     OpKind = "CLEAR"
	OpSetCursor OpKind = "SET_CURSOR"
	OpDrawText  OpKind = "DRAW_TEXT"
	OpDrawRect  OpKind = "DRAW_RECT"
	OpPresent   OpKind = "PRESENT"
)

// Op is one recorded call on a FakeSurface.
type Op struct {
	Kind OpKind
	X, Y int
	W, H int
	Text string
	Size int
}

// FakeSurface is a test double that records every drawing call.
type FakeSurface struct {
	// Ops contains all calls in order.
	Ops []Op

	// Presents counts Present calls.
	Presents int

	// PresentError, if set, will be returned by Present.
	PresentError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSurface creates an empty FakeSurface.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{}
}

// Clear records a clear.
func (f *FakeSurface) Clear() {
	f.Ops = append(f.Ops, Op{Kind: OpClear})
}

// SetCursor records a cursor move.
func (f *FakeSurface) SetCursor(x, y int) {
	f.Ops = append(f.Ops, Op{Kind: OpSetCursor, X: x, Y: y})
}

// DrawText records a text draw.
func (f *FakeSurface) DrawText(s string, size int) {
	f.Ops = append(f.Ops, Op{Kind: OpDrawText, Text: s, Size: size})
}

// DrawRect records a rectangle draw.
func (f *FakeSurface) DrawRect(x, y, w, h int) {
	f.Ops = append(f.Ops, Op{Kind: OpDrawRect, X: x, Y: y, W: w, H: h})
}

// Present records a flush.
func (f *FakeSurface) Present() error {
	if f.PresentError != nil {
		return f.PresentError
	}
	f.Ops = append(f.Ops, Op{Kind: OpPresent})
	f.Presents++
	return nil
}

// Close marks the surface as closed.
func (f *FakeSurface) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded operations.
func (f *FakeSurface) Reset() {
	f.Ops = nil
	f.Presents = 0
	f.PresentError = nil
	f.Closed = false
}

// Texts returns the drawn strings in order, for terse assertions.
func (f *FakeSurface) Texts() []string {
	var out []string
	for _, op := range f.Ops {
		if op.Kind == OpDrawText {
			out = append(out, op.Text)
		}
	}
	return out
}
