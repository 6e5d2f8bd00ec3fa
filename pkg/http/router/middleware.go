package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justinas/alice"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
)

const requestIDHeader = "X-Request-ID"

// RequestID returns the id Labels attached to the request context, "" outside of Labels.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// EnforceJSONHandler rejects requests carrying a body that is not application/json.
func EnforceJSONHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 || r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			writeError(w, http.StatusBadRequest, "Content-Type header is not set")
			return
		}
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			writeError(w, http.StatusBadRequest, "malformed Content-Type header")
			return
		}
		if mt != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, "Content-Type header must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, "{\"error\":{\"code\":%q,\"message\":%q}}\n", http.StatusText(status), message)
}

func (api *API) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				w.Header().Set("Connection", "close")
				api.log.Error("panic while serving request", zap.Any("panic", err),
					zap.String("path", r.URL.Path), zap.String("request_id", RequestID(r.Context())))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RealIP sets r.RemoteAddr from X-Real-IP or the first X-Forwarded-For address.
func RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := realIP(r); ip != "" {
			r.RemoteAddr = ip
		}
		next.ServeHTTP(w, r)
	})
}

func realIP(r *http.Request) string {
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return strings.TrimSpace(xrip)
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	return ""
}

// Heartbeat answers GET/HEAD /<endpoint> with 200 before the request reaches the router.
func Heartbeat(endpoint string) alice.Constructor {
	path := "/" + strings.TrimPrefix(endpoint, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if (r.Method == http.MethodGet || r.Method == http.MethodHead) && strings.EqualFold(r.URL.Path, path) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// Hijack lets the websocket handler take over the connection through the logger.
func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := sr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not implement http.Hijacker")
	}
	sr.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func Logger(log *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Int("bytes", rec.bytes),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("request_id", RequestID(r.Context())),
			)
		})
	}
}

// Labels tags every request with an id, taken from X-Request-ID or generated.
func Labels(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// Timeout bounds the handling time of plain http requests. websocket upgrades are passed through.
func Timeout(d time.Duration) alice.Constructor {
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, d, "request timed out")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isWebsocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			th.ServeHTTP(w, r)
		})
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const clientIdleExpiry = 3 * time.Minute

// Limit is a per client ip token bucket of rps requests per second with the given burst.
func Limit(rps float64, burst int) alice.Constructor {
	var (
		mu        sync.Mutex
		clients   = make(map[string]*client)
		lastPrune = time.Now()
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			mu.Lock()
			now := time.Now()
			if now.Sub(lastPrune) > clientIdleExpiry {
				for key, c := range clients {
					if now.Sub(c.lastSeen) > clientIdleExpiry {
						delete(clients, key)
					}
				}
				lastPrune = now
			}
			c, ok := clients[ip]
			if !ok {
				c = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				clients[ip] = c
			}
			c.lastSeen = now
			allowed := c.limiter.Allow()
			mu.Unlock()

			if !allowed {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
