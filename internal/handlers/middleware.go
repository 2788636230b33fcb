package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"

	// gin context keys
	ctxRequestID = "requestId"
	ctxCookies   = "cookies"
	ctxJSONBody  = "jsonBody"

	maxJSONBodyBytes = 100 << 10 // 100 KiB
)

// requestIDMiddleware keeps a caller supplied X-Request-ID or generates one.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := strings.TrimSpace(c.GetHeader(requestIDHeader))
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(ctxRequestID, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

func (h *Handler) accessLogMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"request_id", c.GetString(ctxRequestID),
	)
}

// jsonBodyMiddleware rejects oversized or malformed JSON bodies up front. Accepted
// bodies are rewound so handlers can still bind them.
func (h *Handler) jsonBodyMiddleware(c *gin.Context) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 || !isJSONContentType(c.ContentType()) {
		c.Next()
		return
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxJSONBodyBytes+1))
	_ = c.Request.Body.Close()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(raw) > maxJSONBodyBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request entity too large"})
		return
	}
	if len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
		if h.log != nil {
			h.log.Infow("http_bad_json_body", "path", c.Request.URL.Path, "request_id", c.GetString(ctxRequestID))
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	c.Set(ctxJSONBody, raw)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	c.Next()
}

func isJSONContentType(ct string) bool {
	return ct == "application/json" || strings.HasSuffix(ct, "+json")
}

// cookieParserMiddleware exposes request cookies as a name -> value map. Values are
// percent-decoded when they decode cleanly and kept verbatim otherwise.
func (h *Handler) cookieParserMiddleware(c *gin.Context) {
	cookies := make(map[string]string)
	for _, ck := range c.Request.Cookies() {
		if _, seen := cookies[ck.Name]; seen {
			continue // first occurrence wins
		}
		v := ck.Value
		if decoded, err := url.PathUnescape(v); err == nil {
			v = decoded
		}
		cookies[ck.Name] = v
	}
	c.Set(ctxCookies, cookies)
	c.Next()
}

// Cookies returns the map built by the cookie parser, or an empty map.
func Cookies(c *gin.Context) map[string]string {
	if v, ok := c.Get(ctxCookies); ok {
		if m, ok := v.(map[string]string); ok {
			return m
		}
	}
	return map[string]string{}
}
