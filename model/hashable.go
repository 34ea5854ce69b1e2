package model

import "github.com/pkg/errors"

// ErrBlockNotFound is returned by lookups that match no block. It is distinct from a block
// that exists but fails validation.
var ErrBlockNotFound = errors.New("block not found")

// Hashable is anything whose hash is a digest over an ordered list of its fields.
type Hashable interface {
	// Fields covered by the hash, in digest order.
	CanonicalFields() [][]byte
	// Digest of the current field values, hex encoded.
	ComputeHash() string
}

var (
	_ Hashable = (*Block)(nil)
	_ Hashable = (*Transaction)(nil)
)
