package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"

	"github.com/lshmam/neucler-square-sub000/internal/api/httputil"
	"github.com/lshmam/neucler-square-sub000/internal/config"
)

// RequireSignature verifies the webhook signature header: a hex-encoded
// HMAC-SHA256 of the raw request body under the shared secret. The body is
// re-buffered for downstream handlers.
func RequireSignature(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(io.LimitReader(r.Body, config.MaxWebhookBodyBytes))
			if err != nil {
				httputil.Error(w, http.StatusBadRequest, config.ErrorCodeValidation, "Failed to read request body")
				return
			}
			r.Body.Close()

			provided := r.Header.Get(config.SignatureHeader)
			if provided == "" || !validSignature(secret, body, provided) {
				slog.Warn("webhook signature rejected",
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr,
					"hasHeader", provided != "",
				)
				httputil.Error(w, http.StatusUnauthorized, config.ErrorCodeSignature, "Invalid webhook signature")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

// Sign computes the signature value for a payload. Exported for tests and
// for local tooling that replays webhook deliveries.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func validSignature(secret string, body []byte, provided string) bool {
	expected := Sign(secret, body)
	return hmac.Equal([]byte(expected), []byte(provided))
}
