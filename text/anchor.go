package text

// Gravity decides where a tracked offset goes when text is inserted exactly
// at it.
type Gravity int

const (
	// StickLeft keeps the offset before inserted text.
	StickLeft Gravity = iota
	// StickRight moves the offset past inserted text.
	StickRight
)

// Anchor is a range or point that follows the text it was created on.
// A range anchor excludes text inserted at either of its boundaries.
type Anchor struct {
	buf          *Buffer
	start, end   int
	startGravity Gravity
	endGravity   Gravity
	disposed     bool
}

// Anchor tracks [start, end) across later edits.
func (b *Buffer) Anchor(start, end int) *Anchor {
	start = clamp(start, 0, len(b.data))
	end = clamp(end, start, len(b.data))
	a := &Anchor{buf: b, start: start, end: end, startGravity: StickRight, endGravity: StickLeft}
	b.anchors = append(b.anchors, a)
	return a
}

// Point tracks a single offset with the given gravity.
func (b *Buffer) Point(offset int, g Gravity) *Anchor {
	offset = clamp(offset, 0, len(b.data))
	a := &Anchor{buf: b, start: offset, end: offset, startGravity: g, endGravity: g}
	b.anchors = append(b.anchors, a)
	return a
}

func (a *Anchor) Start() int { return a.start }

func (a *Anchor) End() int { return a.end }

// Offset is the start of the anchor; for points it is the tracked offset.
func (a *Anchor) Offset() int { return a.start }

// Move repositions the anchor without changing its gravity.
func (a *Anchor) Move(offset int) {
	offset = clamp(offset, 0, len(a.buf.data))
	a.start, a.end = offset, offset
}

// Disposed reports whether Dispose has been called.
func (a *Anchor) Disposed() bool { return a.disposed }

// Dispose detaches the anchor from its buffer. It is safe to call twice and
// on a nil anchor.
func (a *Anchor) Dispose() {
	if a == nil {
		return
	}
	a.disposed = true
}

func (a *Anchor) shift(e Edit) {
	a.start = adjust(a.start, a.startGravity, e)
	a.end = adjust(a.end, a.endGravity, e)
	if a.end < a.start {
		a.end = a.start
	}
}

func adjust(p int, g Gravity, e Edit) int {
	switch {
	case p < e.Start:
		return p
	case p > e.End:
		return p + e.Delta()
	case e.Start == e.End:
		if g == StickRight {
			return p + len(e.Text)
		}
		return p
	case p == e.Start:
		return p
	case p == e.End:
		return e.Start + len(e.Text)
	case g == StickRight:
		return e.Start + len(e.Text)
	default:
		return e.Start
	}
}
