package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/customers-service/internal/errors"
	"github.com/pribylovaa/customers-service/internal/pkg/log"
)

// logLine — одна запись, пойманная sinkHandler.
type logLine struct {
	level slog.Level
	msg   string
	attrs map[string]any
}

type logSink struct {
	mu    sync.Mutex
	lines []logLine
}

func (s *logSink) find(msg string) []logLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []logLine
	for _, l := range s.lines {
		if l.msg == msg {
			out = append(out, l)
		}
	}
	return out
}

func (s *logSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// sinkHandler пишет записи в общий logSink; With(...) даёт копию с общим sink.
type sinkHandler struct {
	sink *logSink
	base []slog.Attr
}

func newSinkLogger() (*slog.Logger, *logSink) {
	sink := &logSink{}
	return slog.New(&sinkHandler{sink: sink}), sink
}

func (h *sinkHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *sinkHandler) Handle(_ context.Context, r slog.Record) error {
	line := logLine{level: r.Level, msg: r.Message, attrs: make(map[string]any, len(h.base)+r.NumAttrs())}
	for _, a := range h.base {
		line.attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		line.attrs[a.Key] = a.Value.Any()
		return true
	})

	h.sink.mu.Lock()
	h.sink.lines = append(h.sink.lines, line)
	h.sink.mu.Unlock()

	return nil
}

func (h *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sinkHandler{sink: h.sink, base: append(slices.Clone(h.base), attrs...)}
}

func (h *sinkHandler) WithGroup(string) slog.Handler { return h }

func customersReq(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"generated when absent", ""},
		{"forwarded from caller", "gw-7f3a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inHeader, inCtx string
			h := chi.Chain(RequestID()).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inHeader = r.Header.Get(HeaderRequestID)
				inCtx = RequestIDFrom(r.Context())
			})

			req := customersReq(http.MethodGet, "/customers/7")
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			got := rr.Header().Get(HeaderRequestID)
			if tt.incoming != "" {
				require.Equal(t, tt.incoming, got)
			} else {
				require.Regexp(t, `^[0-9a-f]{32}$`, got)
			}
			require.Equal(t, got, inHeader)
			require.Equal(t, got, inCtx)
		})
	}
}

func TestRequestIDFrom_EmptyContext(t *testing.T) {
	require.Empty(t, RequestIDFrom(context.Background()))
}

func TestTimeout_Deadline(t *testing.T) {
	t.Run("caps customers call", func(t *testing.T) {
		var (
			dl time.Time
			ok bool
		)
		h := Timeout(50 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dl, ok = r.Context().Deadline()
		}))

		h.ServeHTTP(httptest.NewRecorder(), customersReq(http.MethodGet, "/customers"))

		require.True(t, ok)
		require.LessOrEqual(t, time.Until(dl), 50*time.Millisecond)
	})

	t.Run("earlier caller deadline wins", func(t *testing.T) {
		var dl time.Time
		h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dl, _ = r.Context().Deadline()
		}))

		parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		h.ServeHTTP(httptest.NewRecorder(), customersReq(http.MethodGet, "/customers/7").WithContext(parent))

		parentDL, _ := parent.Deadline()
		require.True(t, parentDL.Equal(dl))
	})

	t.Run("disabled", func(t *testing.T) {
		var ok bool
		h := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = r.Context().Deadline()
		}))

		h.ServeHTTP(httptest.NewRecorder(), customersReq(http.MethodGet, "/customers/7"))

		require.False(t, ok)
	})
}

func TestTimeout_LogsExceededCustomersRequest(t *testing.T) {
	logger, sink := newSinkLogger()

	slowUpload := func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		apierrors.WriteError(w, r, r.Context().Err())
	}
	h := chi.Chain(RequestID(), Logging(logger), Timeout(10*time.Millisecond)).HandlerFunc(slowUpload)

	req := customersReq(http.MethodPost, "/api/v1/customers/7/image")
	req.Header.Set(HeaderRequestID, "rid-slow")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusGatewayTimeout, rr.Code)

	lines := sink.find("customers request deadline exceeded")
	require.Len(t, lines, 1)
	require.Equal(t, slog.LevelWarn, lines[0].level)
	require.Equal(t, http.MethodPost, lines[0].attrs["method"])
	require.Equal(t, "/api/v1/customers/7/image", lines[0].attrs["path"])
	require.Equal(t, 10*time.Millisecond, lines[0].attrs["timeout"])
	require.Equal(t, "rid-slow", lines[0].attrs["request_id"])

	// Итоговая запись Logging тоже есть, со статусом 504.
	access := sink.find("http")
	require.Len(t, access, 1)
	require.EqualValues(t, http.StatusGatewayTimeout, access[0].attrs["status"])
}

func TestTimeout_FastRequestNotLogged(t *testing.T) {
	logger, sink := newSinkLogger()

	ctx := log.Into(context.Background(), logger)
	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	h.ServeHTTP(httptest.NewRecorder(), customersReq(http.MethodDelete, "/customers/7").WithContext(ctx))

	require.Zero(t, sink.len())
}

func TestRecover(t *testing.T) {
	t.Run("panic becomes internal envelope", func(t *testing.T) {
		h := chi.Chain(RequestID(), Recover()).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("nil customer dereference")
		})

		req := customersReq(http.MethodGet, "/customers/7")
		req.Header.Set(HeaderRequestID, "rid-panic")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var body apierrors.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Equal(t, "internal", body.Error.Code)
		require.Equal(t, "rid-panic", body.Error.RequestID)
		require.NotContains(t, body.Error.Message, "dereference")
	})

	t.Run("abort handler passes through", func(t *testing.T) {
		h := Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), customersReq(http.MethodGet, "/customers/7/image"))
		})
	})
}

func TestLogging_AccessRecord(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		level  slog.Level
	}{
		{"implicit 200 on write", 0, `{"id":7}`, slog.LevelInfo},
		{"not found stays info", http.StatusNotFound, "", slog.LevelInfo},
		{"storage failure is error", http.StatusServiceUnavailable, "", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, sink := newSinkLogger()

			h := chi.Chain(RequestID(), Logging(logger)).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := customersReq(http.MethodGet, "/customers/7")
			req.Header.Set(HeaderRequestID, "rid-access")
			h.ServeHTTP(httptest.NewRecorder(), req)

			lines := sink.find("http")
			require.Len(t, lines, 1)

			want := tt.status
			if want == 0 {
				want = http.StatusOK
			}
			line := lines[0]
			require.Equal(t, tt.level, line.level)
			require.Equal(t, http.MethodGet, line.attrs["method"])
			require.Equal(t, "/customers/7", line.attrs["path"])
			require.EqualValues(t, want, line.attrs["status"])
			require.EqualValues(t, len(tt.body), line.attrs["bytes"])
			require.Equal(t, "rid-access", line.attrs["request_id"])
			require.Contains(t, line.attrs, "dur")
		})
	}
}

func TestLogging_HandlerLoggerCarriesRequestID(t *testing.T) {
	logger, sink := newSinkLogger()

	h := chi.Chain(RequestID(), Logging(logger)).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.From(r.Context()).Info("customer deleted", "customer_id", 7)
		w.WriteHeader(http.StatusNoContent)
	})

	req := customersReq(http.MethodDelete, "/customers/7")
	req.Header.Set(HeaderRequestID, "rid-delete")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 2, sink.len())
	lines := sink.find("customer deleted")
	require.Len(t, lines, 1)
	require.Equal(t, "rid-delete", lines[0].attrs["request_id"])
}

func TestStatusWriter(t *testing.T) {
	t.Run("write without header counts bytes as 200", func(t *testing.T) {
		sw := newStatusWriter(httptest.NewRecorder())

		_, _ = sw.Write([]byte(`{"id":7}`))

		require.Equal(t, http.StatusOK, sw.Status())
		require.Equal(t, 8, sw.count)
	})

	t.Run("first status sticks", func(t *testing.T) {
		sw := newStatusWriter(httptest.NewRecorder())

		sw.WriteHeader(http.StatusCreated)
		sw.WriteHeader(http.StatusInternalServerError)

		require.Equal(t, http.StatusCreated, sw.Status())
	})

	t.Run("untouched is 200", func(t *testing.T) {
		require.Equal(t, http.StatusOK, newStatusWriter(httptest.NewRecorder()).Status())
	})

	t.Run("not wrapped twice", func(t *testing.T) {
		sw := newStatusWriter(httptest.NewRecorder())

		require.Same(t, sw, newStatusWriter(sw))
	})
}

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	sub := chi.NewRouter()
	sub.Get("/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	root := chi.NewRouter()
	root.Use(m.Middleware())
	root.Mount("/api/v1", sub)

	for _, target := range []string{"/api/v1/customers/1", "/api/v1/customers/2", "/nope"} {
		root.ServeHTTP(httptest.NewRecorder(), customersReq(http.MethodGet, target))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(
		m.requests.WithLabelValues(http.MethodGet, "/api/v1/customers/{id}", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(
		m.requests.WithLabelValues(http.MethodGet, routeUnmatched, "404")))

	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestMetrics_ExpositionFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	h := chi.Chain(m.Middleware()).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	h.ServeHTTP(httptest.NewRecorder(), customersReq(http.MethodPost, "/customers"))

	expected := `
# HELP http_requests_total Total number of HTTP requests by method, route and status.
# TYPE http_requests_total counter
http_requests_total{method="POST",route="unmatched",status="201"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))
}
