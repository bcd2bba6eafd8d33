// Package text provides the mutable document buffer the repair engine edits,
// together with anchors that track offsets across later edits.
package text

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an edit addresses bytes outside the buffer.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrReadOnly is returned when an edit touches a guarded region.
	ErrReadOnly = errors.New("region is read-only")
)

// Edit records one replacement applied to a buffer: the bytes [Start, End)
// of the previous version were replaced by Text, producing Version.
type Edit struct {
	Start   int
	End     int
	Text    string
	Version int
}

// Delta is the change in buffer length caused by the edit.
func (e Edit) Delta() int {
	return len(e.Text) - (e.End - e.Start)
}

func (e Edit) String() string {
	switch {
	case e.Start == e.End:
		return fmt.Sprintf("insert %q at %d", e.Text, e.Start)
	case e.Text == "":
		return fmt.Sprintf("delete [%d,%d)", e.Start, e.End)
	default:
		return fmt.Sprintf("replace [%d,%d) with %q", e.Start, e.End, e.Text)
	}
}

// MutationError describes an edit the buffer refused to apply.
type MutationError struct {
	Edit Edit
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Edit, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
