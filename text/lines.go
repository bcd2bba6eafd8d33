package text

// LineStart returns the offset of the first byte of the line containing offset.
func (b *Buffer) LineStart(offset int) int {
	offset = clamp(offset, 0, len(b.data))
	for offset > 0 && b.data[offset-1] != '\n' {
		offset--
	}
	return offset
}

// LineEnd returns the offset of the newline ending the line containing
// offset, or the buffer length on the last line.
func (b *Buffer) LineEnd(offset int) int {
	offset = clamp(offset, 0, len(b.data))
	for offset < len(b.data) && b.data[offset] != '\n' {
		offset++
	}
	return offset
}

// Line returns the zero-based line number of offset.
func (b *Buffer) Line(offset int) int {
	offset = clamp(offset, 0, len(b.data))
	n := 0
	for i := 0; i < offset; i++ {
		if b.data[i] == '\n' {
			n++
		}
	}
	return n
}

// Position converts offset to a zero-based line and byte column.
func (b *Buffer) Position(offset int) (line, col int) {
	offset = clamp(offset, 0, len(b.data))
	return b.Line(offset), offset - b.LineStart(offset)
}

// Offset converts a zero-based line and byte column to an offset. Columns
// past the end of the line are clamped to it.
func (b *Buffer) Offset(line, col int) (int, error) {
	if line < 0 || col < 0 {
		return 0, ErrOutOfRange
	}
	start := 0
	for l := 0; l < line; l++ {
		i := start
		for i < len(b.data) && b.data[i] != '\n' {
			i++
		}
		if i >= len(b.data) {
			return 0, ErrOutOfRange
		}
		start = i + 1
	}
	end := b.LineEnd(start)
	if start+col > end {
		return end, nil
	}
	return start + col, nil
}

// LineIndent returns the leading spaces and tabs of the line containing offset.
func (b *Buffer) LineIndent(offset int) string {
	start := b.LineStart(offset)
	i := start
	for i < len(b.data) && (b.data[i] == ' ' || b.data[i] == '\t') {
		i++
	}
	return string(b.data[start:i])
}

// IsBlankLine reports whether the line containing offset holds only spaces
// and tabs.
func (b *Buffer) IsBlankLine(offset int) bool {
	start, end := b.LineStart(offset), b.LineEnd(offset)
	return ShiftForward(b.data, start, " \t") >= end
}

// ShiftForward returns the first index at or after i whose byte is not in
// chars.
func ShiftForward(data []byte, i int, chars string) int {
	for i < len(data) && in(data[i], chars) {
		i++
	}
	return i
}

// ShiftBackward returns the last index at or before i whose byte is not in
// chars, or -1.
func ShiftBackward(data []byte, i int, chars string) int {
	if i >= len(data) {
		i = len(data) - 1
	}
	for i >= 0 && in(data[i], chars) {
		i--
	}
	return i
}

// Bytes exposes the buffer content for read-only scanning. The slice is
// invalidated by the next edit.
func (b *Buffer) Bytes() []byte {
	return b.data
}

func in(c byte, chars string) bool {
	for i := 0; i < len(chars); i++ {
		if chars[i] == c {
			return true
		}
	}
	return false
}
