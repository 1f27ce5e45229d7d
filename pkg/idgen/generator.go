package idgen

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique, time-ordered 64-bit ids.
type Generator interface {
	NextID() int64
}

// Snowflake generates Twitter-style snowflake ids. The node's own lock
// makes it safe for concurrent use.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake initializes a generator for nodeID, which must be unique per
// server instance (0-1023).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) NextID() int64 {
	return s.node.Generate().Int64()
}

// IssuedAt recovers the creation time encoded in a snowflake id.
func IssuedAt(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}

// Sequence is a deterministic Generator, counting up from its start value.
type Sequence struct {
	next atomic.Int64
}

func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

func (s *Sequence) NextID() int64 {
	return s.next.Add(1) - 1
}
