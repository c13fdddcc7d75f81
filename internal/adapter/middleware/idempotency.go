package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// HeaderIdempotencyKey opts a request into replay protection.
	HeaderIdempotencyKey = "Idempotency-Key"

	// How long we hold the "in-progress" lock before it must be refreshed by finishing the handler.
	provisionalLockTTL = 60 * time.Second
	storeTimeout       = 2 * time.Second
)

// ---- Data types ----
type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

func reply(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"message": msg})
}

// IdempotencyMiddleware: key = method + route + Idempotency-Key.
// Requests without the header, and non-mutating methods, pass through.
// Server errors (5xx) are not recorded so the client can retry with the same key.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			// Only enforce on mutating methods
			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			raw, present := req.Header[http.CanonicalHeaderKey(HeaderIdempotencyKey)]
			if !present {
				return next(c)
			}
			idemKey := strings.TrimSpace(strings.Join(raw, ","))
			if !validKey(idemKey) {
				return reply(c, http.StatusBadRequest, "invalid Idempotency-Key")
			}

			// Buffer & hash body
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			// Provisional lock key
			key := buildKey(method, c.Path(), idemKey)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			entry := idempEntry{InProgress: true, BodySHA256: bhash, CreatedAt: nowUTC()}
			ok, err := provisionalSet(ctx, rdb, key, entry)
			if err != nil {
				log.Printf("idempotency: lock %s: %v", key, err)
				return reply(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			var cur idempEntry
			if !ok {
				// Key exists: body must match, and we may be able to replay
				var errLoad error
				cur, errLoad = loadEntry(ctx, rdb, key)
				switch {
				case errors.Is(errLoad, redis.Nil):
					// expired between SET NX and GET; take the lock once more
					ok, err = provisionalSet(ctx, rdb, key, entry)
					if err != nil {
						log.Printf("idempotency: lock %s: %v", key, err)
						return reply(c, http.StatusServiceUnavailable, "idempotency store unavailable")
					}
				case errLoad != nil:
					log.Printf("idempotency: load %s: %v", key, errLoad)
				}
			}
			if !ok {
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return reply(c, http.StatusConflict, "Idempotency-Key reused with different body")
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return reply(c, http.StatusConflict, "request is already in progress")
			}

			// Call next and record final response
			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if rec.code >= http.StatusInternalServerError {
				if err := release(context.Background(), rdb, key); err != nil {
					log.Printf("idempotency: release %s: %v", key, err)
				}
				return nil
			}
			final := idempEntry{
				InProgress: false,
				Code:       rec.code,
				Body:       rec.buf.Bytes(),
				BodySHA256: bhash,
				CreatedAt:  nowUTC(),
			}
			if err := saveFinal(context.Background(), rdb, key, final, ttl); err != nil {
				log.Printf("idempotency: save %s: %v", key, err)
			}
			return nil
		}
	}
}
