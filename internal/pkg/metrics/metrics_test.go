package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegistryExposesServiceCollectors(t *testing.T) {
	reg := NewRegistry()
	StoreOperations.WithLabelValues("list", "ok").Inc()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, 200, resp.StatusCode)
	require.True(t, strings.Contains(string(body), "kubertodo_store_operations_total"))
	require.True(t, strings.Contains(string(body), "go_goroutines"))
}

func TestCountersAreShared(t *testing.T) {
	before := testutil.ToFloat64(RateLimitRejected.WithLabelValues("memory"))
	RateLimitRejected.WithLabelValues("memory").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(RateLimitRejected.WithLabelValues("memory")))
}
