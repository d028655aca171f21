package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordContextBuild(t *testing.T) {
	before := testutil.ToFloat64(ContextBuilds.WithLabelValues(SourceFallback))
	RecordContextBuild(SourceFallback)
	after := testutil.ToFloat64(ContextBuilds.WithLabelValues(SourceFallback))
	if after-before != 1 {
		t.Errorf("fallback counter moved by %v, want 1", after-before)
	}
}

func TestRecordRetrievalError(t *testing.T) {
	before := testutil.ToFloat64(RetrievalErrors.WithLabelValues("search", "invalid_top_k"))
	RecordRetrievalError("search", "invalid_top_k")
	after := testutil.ToFloat64(RetrievalErrors.WithLabelValues("search", "invalid_top_k"))
	if after-before != 1 {
		t.Errorf("error counter moved by %v, want 1", after-before)
	}
}

func TestRecordCompletion(t *testing.T) {
	okBefore := testutil.ToFloat64(CompletionRequests.WithLabelValues("success"))
	errBefore := testutil.ToFloat64(CompletionRequests.WithLabelValues("error"))
	RecordCompletion(nil)
	RecordCompletion(errors.New("boom"))
	if got := testutil.ToFloat64(CompletionRequests.WithLabelValues("success")) - okBefore; got != 1 {
		t.Errorf("success moved by %v", got)
	}
	if got := testutil.ToFloat64(CompletionRequests.WithLabelValues("error")) - errBefore; got != 1 {
		t.Errorf("error moved by %v", got)
	}
}

func TestRecordExternalRequest(t *testing.T) {
	before := testutil.ToFloat64(ExternalRequests.WithLabelValues("youtube", "error"))
	RecordExternalRequest("youtube", errors.New("timeout"))
	if got := testutil.ToFloat64(ExternalRequests.WithLabelValues("youtube", "error")) - before; got != 1 {
		t.Errorf("error moved by %v", got)
	}
}

func TestRecordRetrievalObserves(t *testing.T) {
	RecordRetrieval("search", 12, 250*time.Microsecond)
	if n := testutil.CollectAndCount(RetrievalDuration); n == 0 {
		t.Error("expected retrieval duration series to be collected")
	}
}
