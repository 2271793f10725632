package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type observedRequest struct {
	route  string
	status int
}

type recordingObserver struct {
	seen []observedRequest
}

func (o *recordingObserver) ObserveRequest(route string, status int, _ time.Duration) {
	o.seen = append(o.seen, observedRequest{route: route, status: status})
}

func TestLoggingObservesRoutePattern(t *testing.T) {
	observer := &recordingObserver{}
	r := chi.NewRouter()
	r.Use(Logging(nil, observer))
	r.Get("/checkout/order-pay/{orderId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/checkout/order-pay/42", nil))

	if len(observer.seen) != 1 {
		t.Fatalf("expected one observation, got %d", len(observer.seen))
	}
	got := observer.seen[0]
	if got.route != "/checkout/order-pay/{orderId}" {
		t.Fatalf("unexpected route %q", got.route)
	}
	if got.status != http.StatusAccepted {
		t.Fatalf("unexpected status %d", got.status)
	}
}

func TestLoggingDefaultsStatusToOK(t *testing.T) {
	observer := &recordingObserver{}
	handler := Logging(nil, observer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if len(observer.seen) != 1 || observer.seen[0].status != http.StatusOK {
		t.Fatalf("unexpected observations %+v", observer.seen)
	}
}
