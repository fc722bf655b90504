package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveLoad(t *testing.T) {
	success := testutil.ToFloat64(loadsTotal.WithLabelValues("success"))
	failure := testutil.ToFloat64(loadsTotal.WithLabelValues("error"))

	ObserveLoad(120*time.Millisecond, nil)
	ObserveLoad(3*time.Second, errors.New("boom"))
	ObserveLoad(80*time.Millisecond, nil)

	if got := testutil.ToFloat64(loadsTotal.WithLabelValues("success")) - success; got != 2 {
		t.Errorf("success loads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(loadsTotal.WithLabelValues("error")) - failure; got != 1 {
		t.Errorf("failed loads = %v, want 1", got)
	}
}

func TestObserveRelay(t *testing.T) {
	before := testutil.ToFloat64(relayRequests.WithLabelValues("400"))
	ObserveRelay(http.StatusBadRequest)
	if got := testutil.ToFloat64(relayRequests.WithLabelValues("400")) - before; got != 1 {
		t.Errorf("relay 400 count = %v, want 1", got)
	}
}

func TestRefreshSkipped(t *testing.T) {
	before := testutil.ToFloat64(refreshesSkipped)
	RefreshSkipped()
	if got := testutil.ToFloat64(refreshesSkipped) - before; got != 1 {
		t.Errorf("skipped = %v, want 1", got)
	}
}
