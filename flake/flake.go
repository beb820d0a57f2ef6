/*
Package flake is the stock identifier source.

The cache only depends on the types.Identifier contract; this package
satisfies it with real snowflakes via github.com/bwmarrin/snowflake, which
packs a millisecond timestamp, a node number, and a sequence counter into
one time-ordered 64-bit ID. Uniqueness and ordering are this package's
responsibility; the cache trusts the handles it is given.
*/
package flake

import (
	"github.com/bwmarrin/snowflake"
	"github.com/flakecache/flakecache/types"
)

// Node mints identifier handles. Every generator in a deployment needs a
// distinct node number or IDs can collide across processes.
type Node struct {
	node *snowflake.Node
}

// NewNode creates a generator for the given node number (0..1023).
func NewNode(nodeNumber int64) (*Node, error) {
	n, err := snowflake.NewNode(nodeNumber)
	if err != nil {
		return nil, err
	}
	return &Node{node: n}, nil
}

// Next mints a fresh identifier handle.
func (n *Node) Next() types.Identifier {
	return Flake{id: n.node.Generate()}
}

// Flake is one minted snowflake handle.
type Flake struct {
	id snowflake.ID
}

// FromUint64 wraps an existing raw identifier in a handle. Useful when the
// ID was minted elsewhere and only the number survived.
func FromUint64(id uint64) Flake {
	return Flake{id: snowflake.ID(id)}
}

// ID returns the raw 64-bit identifier.
func (f Flake) ID() uint64 {
	return uint64(f.id.Int64())
}

// String returns the decimal rendering of the identifier.
func (f Flake) String() string {
	return f.id.String()
}

// TimestampMillis returns the creation time encoded in the identifier, in
// Unix milliseconds.
func (f Flake) TimestampMillis() int64 {
	return f.id.Time()
}
