package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) *time.Time {
	t := time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAggregateDates_MinStartMaxEnd(t *testing.T) {
	children := []ChildSnapshot{
		{Start: day(5), End: day(10)},
		{Start: day(2), End: day(8)},
		{Start: day(7), End: day(20)},
	}
	res := AggregateDates(children, DateSkip)
	require.NotNil(t, res.Start)
	require.NotNil(t, res.End)
	assert.Equal(t, *day(2), *res.Start)
	assert.Equal(t, *day(20), *res.End)
	assert.True(t, res.HasChildren)
	assert.Equal(t, 3, res.ChildCount)
}

func TestAggregateDates_DatelessChildCountedButExcluded(t *testing.T) {
	children := []ChildSnapshot{
		{Start: day(5), End: day(10)},
		{},
	}
	res := AggregateDates(children, DateSkip)
	assert.Equal(t, 2, res.ChildCount)
	require.NotNil(t, res.Start)
	assert.Equal(t, *day(5), *res.Start)
	assert.Equal(t, *day(10), *res.End)
}

func TestAggregateDates_PartialDates(t *testing.T) {
	children := []ChildSnapshot{
		{Start: day(3)},
		{End: day(15)},
	}
	res := AggregateDates(children, DateSkip)
	require.NotNil(t, res.Start)
	require.NotNil(t, res.End)
	assert.Equal(t, *day(3), *res.Start)
	assert.Equal(t, *day(15), *res.End)
}

func TestAggregateDates_NoChildren(t *testing.T) {
	res := AggregateDates(nil, DateSkip)
	assert.Nil(t, res.Start)
	assert.Nil(t, res.End)
	assert.False(t, res.HasChildren)
	assert.Equal(t, 0, res.ChildCount)
}

func TestAggregateDates_AllDateless(t *testing.T) {
	res := AggregateDates([]ChildSnapshot{{}, {}}, DateSkip)
	assert.Nil(t, res.Start)
	assert.Nil(t, res.End)
	assert.True(t, res.HasChildren)
	assert.Equal(t, 2, res.ChildCount)
}

func TestAggregateDates_ModesAgree(t *testing.T) {
	children := []ChildSnapshot{
		{Start: day(5), End: day(10)},
		{},
		{Start: day(1)},
	}
	skip := AggregateDates(children, DateSkip)
	for _, mode := range []DateHandling{DatePropagate, DateRequire} {
		assert.Equal(t, skip, AggregateDates(children, mode), "mode %s must match skip", mode)
	}
}
