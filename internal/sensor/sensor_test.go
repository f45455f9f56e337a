package sensor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeProbe implements probe for testing
type fakeProbe struct {
	idle float64
	err  error
}

func (p *fakeProbe) idleSeconds() (float64, error) {
	return p.idle, p.err
}

func TestSampleUsesProbe(t *testing.T) {
	s := NewWithProbe(&fakeProbe{idle: 42.5}, zap.NewNop())
	assert.Equal(t, 42.5, s.Sample())
}

func TestProbeFailureFallsBackSilently(t *testing.T) {
	s := NewWithProbe(&fakeProbe{err: errors.New("ioreg timed out")}, zap.NewNop())
	s.baseline = time.Now().Add(-10 * time.Second)

	idle := s.Sample()
	assert.InDelta(t, 10.0, idle, 1.0)
}

func TestNegativeProbeValueFallsBack(t *testing.T) {
	s := NewWithProbe(&fakeProbe{idle: -3}, zap.NewNop())
	s.baseline = time.Now().Add(-10 * time.Second)

	idle := s.Sample()
	assert.GreaterOrEqual(t, idle, 0.0)
	assert.InDelta(t, 10.0, idle, 1.0)
}

func TestNilProbeUsesFallback(t *testing.T) {
	s := NewWithProbe(nil, zap.NewNop())
	s.baseline = time.Now().Add(-5 * time.Second)

	assert.InDelta(t, 5.0, s.Sample(), 1.0)
}

func TestResetMovesBaselineToNow(t *testing.T) {
	s := NewWithProbe(&fakeProbe{err: errors.New("down")}, zap.NewNop())
	s.baseline = time.Now().Add(-time.Hour)

	s.Reset()
	assert.Less(t, s.Sample(), 1.0)
}

func TestIsIdleComparisonIsInclusive(t *testing.T) {
	s := NewWithProbe(&fakeProbe{idle: 5.0}, zap.NewNop())

	assert.True(t, s.IsIdle(5.0))
	assert.True(t, s.IsIdle(4.9))
	assert.False(t, s.IsIdle(5.1))
}
