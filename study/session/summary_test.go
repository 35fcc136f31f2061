package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exposim/exposim/study"
)

func TestSummary_Statistics(t *testing.T) {
	st := OpenOrCreate(t.TempDir(), "20260825T000000_p1")
	for s := 1; s <= 10; s++ {
		st.RecordPhase(study.NearField, "solve", time.Duration(s)*time.Second)
	}
	summary := st.Summary(study.NearField)
	require.Len(t, summary, 1)
	got := summary[0]
	assert.Equal(t, "solve", got.Phase)
	assert.Equal(t, 10, got.Count)
	assert.InDelta(t, 5.5, got.MeanS, 1e-9)
	assert.InDelta(t, 3.0277, got.StdDevS, 1e-3)
	assert.InDelta(t, 9.0, got.P90S, 1e-9)
}

func TestSummary_SingleSampleHasZeroStdDev(t *testing.T) {
	st := OpenOrCreate(t.TempDir(), "20260825T000000_p2")
	st.RecordPhase(study.FarField, "solve", 3*time.Second)
	summary := st.Summary(study.FarField)
	require.Len(t, summary, 1)
	assert.Equal(t, 0.0, summary[0].StdDevS)
	assert.InDelta(t, 3.0, summary[0].P90S, 1e-9)
}

func TestSummary_EmptyKind(t *testing.T) {
	st := OpenOrCreate(t.TempDir(), "20260825T000000_p3")
	assert.Empty(t, st.Summary(study.NearField))
}

func TestEstimateRemaining(t *testing.T) {
	st := OpenOrCreate(t.TempDir(), "20260825T000000_p4")
	st.RecordPhase(study.NearField, "gridding", 2*time.Second)
	st.RecordPhase(study.NearField, "solve", 8*time.Second)

	assert.Equal(t, 50*time.Second, st.EstimateRemaining(study.NearField, 5))
	assert.Equal(t, time.Duration(0), st.EstimateRemaining(study.NearField, 0))
	// nothing recorded for this kind yet
	assert.Equal(t, time.Duration(0), st.EstimateRemaining(study.FarField, 5))
}
