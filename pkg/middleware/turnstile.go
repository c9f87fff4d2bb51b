package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type turnstileResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// NewTurnstileMiddleware verifies the TurnstileToken header against
// Cloudflare's siteverify endpoint at verifyURL. A nil client uses
// http.DefaultClient.
func NewTurnstileMiddleware(secret, verifyURL string, client *http.Client) gin.HandlerFunc {
	if client == nil {
		client = http.DefaultClient
	}

	return func(c *gin.Context) {
		token := c.GetHeader("TurnstileToken")
		if token == "" {
			apperr.Respond(c, apperr.New(apperr.Validation, "Missing or invalid turnstile token"))
			return
		}

		payload, err := json.Marshal(gin.H{
			"secret":   secret,
			"response": token,
			"remoteip": c.ClientIP(),
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, verifyURL, bytes.NewReader(payload))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(apperr.Upstream, "Failed to verify turnstile token", err))
			return
		}
		defer resp.Body.Close()

		var res turnstileResponse
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			apperr.Respond(c, apperr.Wrap(apperr.Upstream, "Failed to verify turnstile token", err))
			return
		}

		if !res.Success {
			apperr.Respond(c, apperr.Wrap(apperr.Forbidden, "Turnstile verification failed",
				fmt.Errorf("siteverify rejected token, codes %v", res.ErrorCodes)))
			return
		}

		c.Next()
	}
}
