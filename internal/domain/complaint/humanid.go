package complaint

import (
	"context"
	"fmt"
	"time"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

// SequenceAllocator hands out strictly increasing numbers per name.
// Implementations must be atomic across processes.
type SequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
}

// HumanIDGenerator formats "CT" + creation unix millis + a zero-padded
// sequence number of at least four digits.
type HumanIDGenerator struct {
	sequence SequenceAllocator
	now      func() time.Time
}

func NewHumanIDGenerator(sequence SequenceAllocator) *HumanIDGenerator {
	return &HumanIDGenerator{
		sequence: sequence,
		now:      time.Now,
	}
}

func (g *HumanIDGenerator) Generate(ctx context.Context) (string, error) {
	n, err := g.sequence.Next(ctx, constants.SequenceComplaintHumanID)
	if err != nil {
		return "", fmt.Errorf("failed to allocate complaint sequence: %w", err)
	}
	return FormatHumanID(g.now(), n), nil
}

func FormatHumanID(at time.Time, seq int64) string {
	return fmt.Sprintf("CT%d%04d", at.UnixMilli(), seq)
}
