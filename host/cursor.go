package host

// Cursor is the runtime's mouse cursor request.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorText
	CursorCrosshair
	CursorMove
	CursorWait
	CursorNotAllowed
	CursorGrab
	CursorGrabbing
	CursorColResize
	CursorRowResize
	CursorNResize
	CursorSResize
	CursorEResize
	CursorWResize
	CursorNEResize
	CursorNWResize
	CursorSEResize
	CursorSWResize
	CursorEWResize
	CursorNSResize
	CursorNESWResize
	CursorNWSEResize
)

// CursorShape is the smaller set of shapes hosts can actually show.
type CursorShape uint8

const (
	ShapeArrow CursorShape = iota
	ShapeHand
	ShapeIBeam
	ShapeCrosshair
	ShapeResizeEW
	ShapeResizeNS
	ShapeResizeNESW
	ShapeResizeNWSE
	ShapeResizeAll
	ShapeNotAllowed
)

// ShapeForCursor maps a runtime cursor onto a host shape. The
// unidirectional resize cursors collapse onto their bidirectional
// counterparts.
func ShapeForCursor(c Cursor) CursorShape {
	switch c {
	case CursorPointer, CursorGrab, CursorGrabbing:
		return ShapeHand
	case CursorText:
		return ShapeIBeam
	case CursorCrosshair:
		return ShapeCrosshair
	case CursorMove:
		return ShapeResizeAll
	case CursorNotAllowed, CursorWait:
		return ShapeNotAllowed
	case CursorEResize, CursorWResize, CursorEWResize, CursorColResize:
		return ShapeResizeEW
	case CursorNResize, CursorSResize, CursorNSResize, CursorRowResize:
		return ShapeResizeNS
	case CursorNEResize, CursorSWResize, CursorNESWResize:
		return ShapeResizeNESW
	case CursorNWResize, CursorSEResize, CursorNWSEResize:
		return ShapeResizeNWSE
	default:
		return ShapeArrow
	}
}
