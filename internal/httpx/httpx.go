// Package httpx holds the gin helpers shared by the catalog handlers.
package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cataloghub/internal/catalog"
)

// StatusFor maps a catalog error kind to an HTTP status.
func StatusFor(kind catalog.Kind) int {
	switch kind {
	case catalog.KindNotFound, catalog.KindNoMatch:
		return http.StatusNotFound
	case catalog.KindIdentifierMismatch, catalog.KindValidation:
		return http.StatusBadRequest
	case catalog.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err as a JSON error body. Store failures are logged and
// reported without detail.
func Fail(c *gin.Context, log *zap.Logger, err error) {
	kind := catalog.KindOf(err)
	if kind == "" {
		if log != nil {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	body := gin.H{"error": err.Error(), "kind": kind}
	var ce *catalog.Error
	if errors.As(err, &ce) && len(ce.Missing) > 0 {
		body["missing"] = ce.Missing
	}
	c.JSON(StatusFor(kind), body)
}

// ParseID reads a positive integer path parameter. On failure it writes a
// 400 and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "kind": catalog.KindValidation})
		return 0, false
	}
	return id, true
}

// OptionalString returns nil for an absent or blank query parameter.
func OptionalString(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// OptionalInt parses an optional integer query parameter.
func OptionalInt(c *gin.Context, key string) (*int, error) {
	s := OptionalString(c, key)
	if s == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, &catalog.Error{Kind: catalog.KindValidation, Message: key + " must be an integer"}
	}
	return &n, nil
}

// OptionalInt64 parses an optional id query parameter.
func OptionalInt64(c *gin.Context, key string) (*int64, error) {
	s := OptionalString(c, key)
	if s == nil {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return nil, &catalog.Error{Kind: catalog.KindValidation, Message: key + " must be an integer id"}
	}
	return &n, nil
}

// BindJSON decodes the body into v, writing a 400 on malformed input.
func BindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json", "kind": catalog.KindValidation})
		return false
	}
	return true
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
