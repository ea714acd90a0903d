package idgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

const maxNode int64 = 1023

var (
	ErrExceedNode      = errors.New("snowflake node out of range")
	ErrUnknownStrategy = errors.New("unknown id strategy")
)

// Snowflake issues time-ordered decimal ids from a single node. The
// underlying node serialises Generate calls.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a node. nodeID must be within 0..1023.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNode {
		return nil, fmt.Errorf("%w: %d", ErrExceedNode, nodeID)
	}
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

// NewID returns the next time-ordered id of this node in base 10.
func (s *Snowflake) NewID() string {
	return s.node.Generate().String()
}

// UUID issues random version 4 ids.
type UUID struct{}

// NewID returns a random version 4 UUID.
func (UUID) NewID() string {
	return uuid.New().String()
}

// Generator is satisfied by both strategies.
type Generator interface {
	NewID() string
}

// New builds the generator named by strategy ("snowflake" or "uuid").
func New(strategy string, nodeID int64) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", "snowflake":
		return NewSnowflake(nodeID)
	case "uuid":
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
}
