package cards

import (
	"io"
)

// Dataset Reads a card dataset into a catalog.
type Dataset interface {
	Import(r io.Reader) (*Catalog, error)
}
