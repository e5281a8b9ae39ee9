package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(votes.WithLabelValues("time", "vote"))
	Vote("time", "vote")
	assert.Equal(t, before+1, testutil.ToFloat64(votes.WithLabelValues("time", "vote")))

	before = testutil.ToFloat64(joins.WithLabelValues("capacity_exceeded"))
	Join("capacity_exceeded")
	assert.Equal(t, before+1, testutil.ToFloat64(joins.WithLabelValues("capacity_exceeded")))

	before = testutil.ToFloat64(finalizations.WithLabelValues("FINALIZED", "deadline"))
	Finalization("FINALIZED", "deadline")
	assert.Equal(t, before+1, testutil.ToFloat64(finalizations.WithLabelValues("FINALIZED", "deadline")))

	before = testutil.ToFloat64(deltaPublishFailures)
	DeltaPublishFailed()
	assert.Equal(t, before+1, testutil.ToFloat64(deltaPublishFailures))
}
