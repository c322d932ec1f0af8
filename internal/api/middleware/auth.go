package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	apierrors "github.com/feral-file/darkpool-indexer/internal/api/shared/errors"
	"github.com/feral-file/darkpool-indexer/internal/logger"
)

const (
	// AuthHeader carries the base64 (unpadded) request signature
	AuthHeader = "x-renegade-auth"
	// AuthExpirationHeader carries the signature deadline in unix milliseconds
	AuthExpirationHeader = "x-renegade-auth-expiration"

	signedHeaderPrefix = "x-renegade"
)

var (
	ErrSignatureMissing  = errors.New("signature missing")
	ErrSignatureFormat   = errors.New("signature format invalid")
	ErrSignatureInvalid  = errors.New("invalid signature")
	ErrExpirationMissing = errors.New("signature expiration missing")
	ErrExpirationFormat  = errors.New("signature expiration format invalid")
	ErrSignatureExpired  = errors.New("signature expired")
)

// AuthConfig holds the HMAC authentication configuration.
// An empty Key disables authentication.
type AuthConfig struct {
	Key []byte
	// MaxExpiration rejects deadlines further in the future than this. Zero means no limit.
	MaxExpiration time.Duration
}

// Enabled reports whether requests must be signed
func (c AuthConfig) Enabled() bool {
	return len(c.Key) > 0
}

// Sign computes the signature of a request: HMAC-SHA256 over the path, the
// sorted x-renegade-* headers other than the signature itself, and the body
func Sign(key []byte, path string, header http.Header, body []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(path))
	mac.Write(signedHeaderBytes(header))
	mac.Write(body)
	return mac.Sum(nil)
}

// SignRequest sets the expiration and signature headers on a request
// whose body is body
func SignRequest(req *http.Request, key []byte, body []byte, expiresAt time.Time) {
	req.Header.Set(AuthExpirationHeader, strconv.FormatInt(expiresAt.UnixMilli(), 10))
	sig := Sign(key, req.URL.Path, req.Header, body)
	req.Header.Set(AuthHeader, base64.RawStdEncoding.EncodeToString(sig))
}

func signedHeaderBytes(header http.Header) []byte {
	type kv struct{ key, value string }
	var signed []kv
	for name, values := range header {
		key := strings.ToLower(name)
		if !strings.HasPrefix(key, signedHeaderPrefix) || key == AuthHeader {
			continue
		}
		for _, v := range values {
			signed = append(signed, kv{key, v})
		}
	}
	sort.SliceStable(signed, func(i, j int) bool { return signed[i].key < signed[j].key })

	var buf bytes.Buffer
	for _, h := range signed {
		buf.WriteString(h.key)
		buf.WriteString(h.value)
	}
	return buf.Bytes()
}

// Verify checks the expiration and signature of a request with the given body
func Verify(cfg AuthConfig, now time.Time, path string, header http.Header, body []byte) error {
	raw := header.Get(AuthExpirationHeader)
	if raw == "" {
		return ErrExpirationMissing
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ErrExpirationFormat
	}
	deadline := time.UnixMilli(ms)
	if !now.Before(deadline) {
		return ErrSignatureExpired
	}
	if cfg.MaxExpiration > 0 && deadline.Sub(now) > cfg.MaxExpiration {
		return fmt.Errorf("%w: deadline too far in the future", ErrExpirationFormat)
	}

	encoded := header.Get(AuthHeader)
	if encoded == "" {
		return ErrSignatureMissing
	}
	sig, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil || len(sig) != sha256.Size {
		return ErrSignatureFormat
	}

	if !hmac.Equal(sig, Sign(cfg.Key, path, header, body)) {
		return ErrSignatureInvalid
	}
	return nil
}

// HMACAuth rejects requests without a valid unexpired signature.
// The body is buffered and restored for the next handler.
func HMACAuth(cfg AuthConfig, clock adapter.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled() {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, apierrors.NewBadRequestError("Failed to read request body"))
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		if err := Verify(cfg, clock.Now(), c.Request.URL.Path, c.Request.Header, body); err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError("Authentication failed", err.Error()))
			return
		}

		c.Next()
	}
}
