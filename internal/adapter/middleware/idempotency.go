package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderRequestAt      = "X-Request-At"

	// in-flight reservation lifetime; a crashed handler frees the key after this
	provisionalLockTTL = 60 * time.Second
	maxClockSkew       = 10 * time.Minute
	storeTimeout       = 2 * time.Second
)

type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	Key         string    `json:"key"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// respRecorder tees the response body so it can be stored for replay.
type respRecorder struct {
	w    http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

func reject(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware replays the stored response of a mutating request
// sent again with the same Idempotency-Key, method and path. Requests without
// the header pass straight through. X-Request-At is required alongside the
// key and must be epoch (seconds or ms) or RFC3339 with a timezone.
func IdempotencyMiddleware(rdb redis.Cmdable, ttl time.Duration) echo.MiddlewareFunc {
	store := entryStore{rdb: rdb, ttl: ttl}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			idemKey := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if idemKey == "" {
				return next(c)
			}
			if !validKey(idemKey) {
				return reject(c, http.StatusBadRequest, "invalid Idempotency-Key format")
			}
			reqAt, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return reject(c, http.StatusBadRequest, err.Error())
			}
			now := nowUTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return reject(c, http.StatusBadRequest, "X-Request-At too skewed")
			}

			var body []byte
			if req.Body != nil {
				if body, err = io.ReadAll(req.Body); err != nil {
					log.Warn().Err(err).Str("path", req.URL.Path).Msg("idempotency: body read failed")
					return reject(c, http.StatusBadRequest, "unreadable request body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			key := buildKey(req.Method, req.URL.Path, idemKey)
			entry := idempEntry{
				InProgress:  true,
				BodySHA256:  bodyHash(body),
				Key:         idemKey,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   now,
			}

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			ok, err := store.reserve(ctx, key, entry)
			if err != nil {
				log.Error().Err(err).Str("key", key).Msg("idempotency: store unavailable")
				return reject(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !ok {
				return replay(ctx, c, store, key, entry.BodySHA256)
			}

			rec := &respRecorder{w: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request may have been cancelled by now; finish the bookkeeping anyway
			bg, cancelBg := context.WithTimeout(context.Background(), storeTimeout)
			defer cancelBg()

			if rec.code >= http.StatusInternalServerError {
				if err := store.release(bg, key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("idempotency: release failed")
				}
				return nil
			}

			entry.InProgress = false
			entry.Code = rec.code
			entry.Body = rec.buf.Bytes()
			if err := store.commit(bg, key, entry); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency: save failed")
			}
			return nil
		}
	}
}

// replay answers a request whose key is already taken.
func replay(ctx context.Context, c echo.Context, store entryStore, key, bodySHA string) error {
	cur, err := store.load(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("idempotency: load failed")
	}
	if cur.BodySHA256 != "" && cur.BodySHA256 != bodySHA {
		return reject(c, http.StatusConflict, "Idempotency-Key reused with different body")
	}
	if !cur.InProgress && cur.Code != 0 {
		log.Debug().Str("key", key).Int("status", cur.Code).Msg("idempotency: replayed")
		if len(cur.Body) == 0 {
			return c.NoContent(cur.Code)
		}
		return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
	}
	return reject(c, http.StatusConflict, "request is already in progress")
}
