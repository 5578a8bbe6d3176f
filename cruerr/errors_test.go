package cruerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf_MapsSentinels(t *testing.T) {
	assert.Equal(t, None, CodeOf(nil))
	assert.Equal(t, NoLanes, CodeOf(ErrNoLanes))
	assert.Equal(t, Cancelled, CodeOf(ErrCancelled))
	assert.Equal(t, ContractViolation, CodeOf(ErrContractViolation))
}

func TestChannel_MonotonicOnceFailed(t *testing.T) {
	ResetStickyForTesting()
	ch := NewChannel()
	assert.False(t, ch.Failed())

	ch.Report(ErrCancelled)
	assert.True(t, ch.Failed())
	assert.ErrorIs(t, ch.Err(), ErrCancelled)

	ch.Report(ErrOverflow)
	assert.ErrorIs(t, ch.Err(), ErrCancelled, "first error wins for Err()")

	all := ch.All()
	assert.ErrorIs(t, all, ErrCancelled)
	assert.ErrorIs(t, all, ErrOverflow)
}

func TestChannel_StickyAccumulatesAcrossChannels(t *testing.T) {
	ResetStickyForTesting()
	NewChannel().Report(ErrNoLanes)
	NewChannel().Report(ErrOverflow)

	got := Sticky()
	assert.NotZero(t, got&uint32(NoLanes))
	assert.NotZero(t, got&uint32(Overflow))
}

func TestChannel_Reportf_PreservesSentinelMatching(t *testing.T) {
	ch := NewChannel()
	ch.Reportf(ErrContractViolation, "vertex %d", 7)
	assert.ErrorIs(t, ch.Err(), ErrContractViolation)
	assert.Contains(t, ch.Err().Error(), "vertex 7")
}
