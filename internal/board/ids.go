package board

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daycards/internal/constants"
)

// IDGenerator issues task identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// ClockGenerator issues millisecond Unix timestamps as decimal strings. Values
// are strictly increasing within one generator even when called faster than the
// clock advances.
type ClockGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewClockGenerator() *ClockGenerator {
	return &ClockGenerator{now: time.Now}
}

func (g *ClockGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// NewIDGenerator returns the generator registered under name. Empty means uuid.
func NewIDGenerator(name string) (IDGenerator, error) {
	switch name {
	case "", constants.IDGeneratorUUID:
		return UUIDGenerator{}, nil
	case constants.IDGeneratorClock:
		return NewClockGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown id generator: %s", name)
	}
}
