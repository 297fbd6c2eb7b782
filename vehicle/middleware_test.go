package vehicle

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vin-gateway/vehicle/infra"
)

func TestThrottleMiddleware_AllowsThenRejectsSameKey(t *testing.T) {
	store := infra.NewClientLimiterStore(0.02, 1)

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	h := ThrottleMiddleware(ThrottleOptions{
		Store:               store,
		RejectStatus:        http.StatusTooManyRequests,
		RetryAfter:          1 * time.Second,
		AddRateLimitHeaders: true,
	})(next)

	// 1) primeira passa
	r1 := httptest.NewRequest(http.MethodGet, "http://example/vehicles/decode/1HGCM82633A123456", nil)
	r1.RemoteAddr = "10.0.0.1:1234"
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r1)
	if w1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w1.Code)
	}
	if got := w1.Header().Get("X-RateLimit-Key"); got != "10.0.0.1" {
		t.Fatalf("expected X-RateLimit-Key=10.0.0.1, got %q", got)
	}
	if got := w1.Header().Get("X-RateLimit-RPS"); got != "0.02" {
		t.Fatalf("expected X-RateLimit-RPS=0.02, got %q", got)
	}
	if got := w1.Header().Get("X-RateLimit-Burst"); got != "1" {
		t.Fatalf("expected X-RateLimit-Burst=1, got %q", got)
	}

	// 2) segunda deve bloquear (burst=1 e rps bem baixo)
	r2 := httptest.NewRequest(http.MethodGet, "http://example/vehicles/decode/1HGCM82633A123456", nil)
	r2.RemoteAddr = "10.0.0.1:1234"
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w2.Code)
	}
	if got := w2.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After=1, got %q", got)
	}
	if !strings.Contains(w2.Body.String(), `"error"`) {
		t.Fatalf("expected JSON error body, got %q", w2.Body.String())
	}

	if calls != 1 {
		t.Fatalf("expected next handler to be called once, got %d", calls)
	}
}

func TestThrottleMiddleware_KeyByHeader(t *testing.T) {
	store := infra.NewClientLimiterStore(0.02, 1)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := ThrottleMiddleware(ThrottleOptions{
		Store:     store,
		KeyHeader: "X-Api-Key",
	})(next)

	// duas chaves diferentes => ambos devem passar (cada chave tem seu próprio limiter)
	for _, key := range []string{"k1", "k2"} {
		r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
		r.Header.Set("X-Api-Key", key)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for key %s, got %d", key, w.Code)
		}
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", store.Len())
	}
}

func TestRequestIDMiddleware_KeepsIncomingOrGenerates(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	r1 := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r1.Header.Set(RequestIDHeader, "abc-123")
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r1)
	if seen != "abc-123" || w1.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected incoming request id to be kept, got %q", seen)
	}

	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "http://example/", nil))
	if len(seen) != 36 || w2.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected generated uuid, got %q", seen)
	}
}

func TestThrottleMiddleware_KeyByOrgOnVehicleCreation(t *testing.T) {
	store := infra.NewClientLimiterStore(0.02, 1)

	var bodies []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		w.WriteHeader(http.StatusCreated)
	})

	h := ThrottleMiddleware(ThrottleOptions{
		Store:               store,
		KeyByOrg:            true,
		AddRateLimitHeaders: true,
	})(next)

	post := func(body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "http://example/vehicles", strings.NewReader(body))
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	// mesmo IP, orgs diferentes: cada org tem seu próprio bucket
	w1 := post(`{"vin":"1HGCM82633A123456","org":"Hondaorg"}`)
	if w1.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w1.Code)
	}
	if got := w1.Header().Get("X-RateLimit-Key"); got != "org:Hondaorg" {
		t.Fatalf("expected org key, got %q", got)
	}
	if w := post(`{"vin":"2HGCM82633A654321","org":"civichonda"}`); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a second org, got %d", w.Code)
	}
	if w := post(`{"vin":"JH4KA7561PC008269","org":"Hondaorg"}`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for the same org, got %d", w.Code)
	}

	// o handler recebe o body intacto
	if len(bodies) != 2 || bodies[0] != `{"vin":"1HGCM82633A123456","org":"Hondaorg"}` {
		t.Fatalf("expected untouched bodies, got %q", bodies)
	}
}

func TestOrgKeyFunc_FallsBackOutsideVehicleCreation(t *testing.T) {
	fn := OrgKeyFunc(DefaultKeyFunc("", false))

	get := httptest.NewRequest(http.MethodGet, "http://example/vehicles/1HGCM82633A123456", nil)
	get.RemoteAddr = "10.0.0.1:1234"
	if got := fn(get); got != "10.0.0.1" {
		t.Fatalf("expected remote host for GET, got %q", got)
	}

	for _, body := range []string{`not json`, `{"vin":"1HGCM82633A123456"}`, `{"org":"   "}`} {
		r := httptest.NewRequest(http.MethodPost, "http://example/vehicles", strings.NewReader(body))
		r.RemoteAddr = "10.0.0.1:1234"
		if got := fn(r); got != "10.0.0.1" {
			t.Fatalf("expected fallback for body %q, got %q", body, got)
		}
		rest, _ := io.ReadAll(r.Body)
		if string(rest) != body {
			t.Fatalf("expected body restored, got %q", rest)
		}
	}
}
