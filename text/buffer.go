package text

import (
	"slices"
	"strings"
)

// Buffer is a byte-addressed document. Every successful mutation bumps the
// version, is appended to the edit log and adjusts all live anchors.
type Buffer struct {
	data    []byte
	version int
	edits   []Edit
	anchors []*Anchor
	guards  []*Anchor
}

func NewBuffer(s string) *Buffer {
	return &Buffer{data: []byte(s)}
}

func (b *Buffer) String() string {
	return string(b.data)
}

func (b *Buffer) Len() int {
	return len(b.data)
}

// Version starts at zero and increases by one per applied edit.
func (b *Buffer) Version() int {
	return b.version
}

// Edits returns the edits applied after the given version, oldest first.
func (b *Buffer) Edits(since int) []Edit {
	var out []Edit
	for _, e := range b.edits {
		if e.Version > since {
			out = append(out, e)
		}
	}
	return out
}

// At returns the byte at offset i, or 0 when i is outside the buffer.
func (b *Buffer) At(i int) byte {
	if i < 0 || i >= len(b.data) {
		return 0
	}
	return b.data[i]
}

// Slice returns the text in [start, end), clamped to the buffer bounds.
func (b *Buffer) Slice(start, end int) string {
	start = clamp(start, 0, len(b.data))
	end = clamp(end, start, len(b.data))
	return string(b.data[start:end])
}

// Contains reports whether substr occurs inside [start, end).
func (b *Buffer) Contains(start, end int, substr string) bool {
	return strings.Contains(b.Slice(start, end), substr)
}

func (b *Buffer) Insert(offset int, s string) error {
	return b.Replace(offset, offset, s)
}

func (b *Buffer) Delete(start, end int) error {
	return b.Replace(start, end, "")
}

// Replace substitutes [start, end) with s. Edits that fall outside the
// buffer or overlap a guarded region are rejected with a *MutationError.
func (b *Buffer) Replace(start, end int, s string) error {
	e := Edit{Start: start, End: end, Text: s, Version: b.version + 1}
	if start < 0 || end < start || end > len(b.data) {
		return &MutationError{Edit: e, Err: ErrOutOfRange}
	}
	for _, g := range b.guards {
		if g.disposed {
			continue
		}
		if touches(g.start, g.end, start, end) {
			return &MutationError{Edit: e, Err: ErrReadOnly}
		}
	}
	if start == end && s == "" {
		return nil
	}
	b.apply(e)
	return nil
}

// Reset replaces the whole content, ignoring guards. It is used to restore
// a snapshot and therefore never fails.
func (b *Buffer) Reset(s string) {
	if s == string(b.data) {
		return
	}
	b.apply(Edit{Start: 0, End: len(b.data), Text: s, Version: b.version + 1})
}

func (b *Buffer) apply(e Edit) {
	out := make([]byte, 0, len(b.data)+e.Delta())
	out = append(out, b.data[:e.Start]...)
	out = append(out, e.Text...)
	out = append(out, b.data[e.End:]...)
	b.data = out
	b.version = e.Version
	b.edits = append(b.edits, e)

	b.anchors = shiftLive(b.anchors, e)
	b.guards = shiftLive(b.guards, e)
}

// shiftLive shifts the anchors that are still attached and drops the rest.
func shiftLive(as []*Anchor, e Edit) []*Anchor {
	live := as[:0]
	for _, a := range as {
		if a.disposed {
			continue
		}
		a.shift(e)
		live = append(live, a)
	}
	clear(as[len(live):])
	return live
}

// Protect marks [start, end) read-only until the returned anchor is disposed.
// Insertions exactly at the region boundaries are still allowed.
func (b *Buffer) Protect(start, end int) *Anchor {
	a := &Anchor{buf: b, start: start, end: end, startGravity: StickRight, endGravity: StickLeft}
	b.guards = slices.DeleteFunc(b.guards, (*Anchor).Disposed)
	b.guards = append(b.guards, a)
	return a
}

func touches(gs, ge, start, end int) bool {
	if start == end {
		return gs < start && start < ge
	}
	return start < ge && end > gs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
