package interactionhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/ports"
	userhttp "github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/http"
	userports "github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
)

const (
	apiPrefix = "/api/"
	redacted  = "[redacted]"
)

var sensitiveKeys = map[string]struct{}{
	"password":              {},
	"password_confirmation": {},
}

// Config wires the interaction recorder.
type Config struct {
	Service ports.Service
	// Users resolves the caller from a bearer token when no auth middleware ran.
	Users  userports.Service
	Logger *slog.Logger
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Recorder audits every request under /api/. Recording failures are logged
// and never change the response.
func Recorder(cfg Config) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if cfg.Service == nil || !strings.HasPrefix(path, apiPrefix) {
			c.Next()
			return
		}

		requestBody := requestPayload(c)
		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		input := ports.RecordInput{
			UserID:       callerID(c, cfg.Users),
			Path:         path,
			RequestBody:  requestBody,
			ResponseCode: writer.Status(),
			ResponseBody: writer.body.String(),
			IPAddress:    c.ClientIP(),
		}
		ctx := context.WithoutCancel(c.Request.Context())
		if _, err := cfg.Service.Record(ctx, input); err != nil {
			logger.ErrorContext(ctx, "failed to record api interaction",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}
}

func callerID(c *gin.Context, users userports.Service) *uuid.UUID {
	if id, ok := userhttp.UserIDFrom(c); ok {
		return &id
	}
	token := userhttp.BearerToken(c)
	if token == "" || users == nil {
		return nil
	}
	verification := users.VerifyToken(c.Request.Context(), token)
	if !verification.Valid {
		return nil
	}
	return &verification.UserID
}

// requestPayload merges query parameters and a JSON object body into one JSON
// document with credentials redacted. The body is restored for later handlers.
func requestPayload(c *gin.Context) string {
	payload := map[string]any{}
	for key, values := range c.Request.URL.Query() {
		if len(values) == 1 {
			payload[key] = values[0]
		} else {
			payload[key] = values
		}
	}

	if c.Request.Body != nil {
		raw, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		if err == nil && len(bytes.TrimSpace(raw)) > 0 {
			var body map[string]any
			if json.Unmarshal(raw, &body) == nil {
				for key, value := range body {
					payload[key] = value
				}
			} else {
				payload["_raw"] = string(raw)
			}
		}
	}

	for key := range payload {
		if _, ok := sensitiveKeys[strings.ToLower(key)]; ok {
			payload[key] = redacted
		}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}
