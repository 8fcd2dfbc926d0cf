package record

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces row ids for inserts without a primary-key value.
// It is injected so tests can run with deterministic ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the production generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SeqIDGenerator hands out row-1, row-2, ... in order. Test generator.
type SeqIDGenerator struct {
	n atomic.Uint64
}

func (g *SeqIDGenerator) NewID() string {
	return fmt.Sprintf("row-%d", g.n.Add(1))
}
