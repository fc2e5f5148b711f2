package sulcigo

import (
	"errors"
	"fmt"
)

var (
	// ErrNilProtocol is returned when sulcus identification is called
	// without a protocol.
	ErrNilProtocol = errors.New("protocol must not be nil")
)

// ErrLengthMismatch indicates a per-vertex array whose length does not
// match the mesh vertex count.
type ErrLengthMismatch struct {
	What string
	Want int
	Got  int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: %s has %d values, mesh has %d vertices", e.What, e.Got, e.Want)
}

// ErrTooFewVertices indicates a mesh below the minimum resolution for
// histogram-based threshold selection.
type ErrTooFewVertices struct {
	Vertices int
	Min      int
}

func (e *ErrTooFewVertices) Error() string {
	return fmt.Sprintf("too few vertices for depth histogram: %d < %d", e.Vertices, e.Min)
}
