package ids

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Generator produces unique order identifiers. Snowflake ids combine a
// monotonic timestamp, a node id and a per-millisecond sequence, so no shared
// mutable counter exists outside the node itself.
type Generator struct {
	node *snowflake.Node
}

// NewGenerator constructs a generator for the given node id.
func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

// NextOrderID returns a fresh order id. Ids are uppercase base-36 so they
// survive a round trip through bank transfer descriptions, which banks
// commonly uppercase and strip of punctuation.
func (g *Generator) NextOrderID() string {
	return strings.ToUpper(g.node.Generate().Base36())
}
