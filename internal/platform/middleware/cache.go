package middleware

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CatalogCache adds HTTP validation caching to the public catalog lookups:
// facility types, scheme info, and insurance products change rarely, so
// low-bandwidth clients should be able to revalidate them for free.
// Successful GET responses get a content ETag and a public Cache-Control;
// a matching If-None-Match short-circuits to 304 Not Modified with no body.
func CatalogCache(maxAge time.Duration) echo.MiddlewareFunc {
	cacheControl := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}

			res := c.Response()
			orig := res.Writer
			buf := &bufferedResponse{header: orig.Header(), status: http.StatusOK}
			res.Writer = buf

			if err := next(c); err != nil {
				res.Writer = orig
				return err
			}
			res.Writer = orig

			if buf.status != http.StatusOK {
				return buf.replay(orig)
			}

			etag := contentETag(buf.body.Bytes())
			res.Header().Set("ETag", etag)
			res.Header().Set("Cache-Control", cacheControl)

			if match := req.Header.Get("If-None-Match"); match != "" && etagMatch(match, etag) {
				orig.WriteHeader(http.StatusNotModified)
				return nil
			}

			return buf.replay(orig)
		}
	}
}

// bufferedResponse holds back the handler's output so the middleware can
// derive the ETag before anything reaches the client.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) Write(p []byte) (int, error) { return b.body.Write(p) }

func (b *bufferedResponse) WriteHeader(code int) { b.status = code }

func (b *bufferedResponse) replay(w http.ResponseWriter) error {
	w.WriteHeader(b.status)
	if b.body.Len() == 0 {
		return nil
	}
	_, err := w.Write(b.body.Bytes())
	return err
}

// contentETag derives a strong ETag from the response body.
func contentETag(body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf(`"%x"`, sum[:16])
}

// etagMatch reports whether an If-None-Match header value matches the ETag.
// Handles comma-separated candidate lists and the "*" wildcard.
func etagMatch(headerVal, etag string) bool {
	headerVal = strings.TrimSpace(headerVal)
	if headerVal == "*" {
		return true
	}
	for _, candidate := range strings.Split(headerVal, ",") {
		if strings.TrimSpace(candidate) == etag {
			return true
		}
	}
	return false
}
