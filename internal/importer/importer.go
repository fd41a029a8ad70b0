// Package importer loads supplier packing lists into a collection.
package importer

import (
	"io"
)

// Line is one row of a packing list: Quantity identical pieces costing Cost
// cents each.
type Line struct {
	Row      int
	Name     string
	Cost     int64
	Quantity int
}

type Parser interface {
	Parse(r io.Reader) ([]Line, error)
}
