package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/wallet/:user_id", "200", 0.02)
	RecordHTTPRequest("POST", "/wallet/:user_id", "200", 0.03)
	RecordHTTPRequest("POST", "/wallet/:user_id", "404", 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/wallet/:user_id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/wallet/:user_id", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordWalletAdjustment(t *testing.T) {
	WalletAdjustmentsTotal.Reset()

	RecordWalletAdjustment("credit")
	RecordWalletAdjustment("credit")
	RecordWalletAdjustment("debit")

	assert.Equal(t, float64(2), testutil.ToFloat64(WalletAdjustmentsTotal.WithLabelValues("credit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(WalletAdjustmentsTotal.WithLabelValues("debit")))
}

func TestRecordUserCreated(t *testing.T) {
	before := testutil.ToFloat64(UsersCreatedTotal)
	RecordUserCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(UsersCreatedTotal))
}

func TestRecordCacheLookup(t *testing.T) {
	CacheLookupsTotal.Reset()

	RecordCacheLookup("users", true)
	RecordCacheLookup("users", false)
	RecordCacheLookup("users", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("users", "hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("users", "miss")))
}
