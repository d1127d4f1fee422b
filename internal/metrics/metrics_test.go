package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("requests.list", "error"))
	RecordUpstream("requests.list", 0, 10*time.Millisecond)
	after := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("requests.list", "error"))
	assert.Equal(t, before+1, after)

	RecordUpstream("requests.list", 200, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("requests.list", "200")))
}

func TestRecordCache(t *testing.T) {
	before := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("hit"))
	RecordCache("hit")
	RecordCache("hit")
	assert.Equal(t, before+2, testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("hit")))
}

func TestRecordInvalidation(t *testing.T) {
	RecordInvalidation("Payment", 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(CacheInvalidationsTotal.WithLabelValues("Payment")))
}
