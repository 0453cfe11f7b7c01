package utils

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"payhub-backend/pkg/logger"
)

// LoggingTransport implements http.RoundTripper and logs outbound provider
// calls. The Authorization header is redacted: it carries shop credentials.
type LoggingTransport struct {
	Transport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction and logs the request and response
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBodyLog := ""
	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Restore body
		reqBodyLog = string(bodyBytes)
	}
	logger.Log.Info("provider request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("headers", redactedHeaders(req.Header)),
		zap.String("body", reqBodyLog),
	)

	start := time.Now()

	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	resp, err := transport.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Log.Error("provider request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	respBodyLog := ""
	if resp.Body != nil {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Restore body
		if len(bodyBytes) > 2000 {
			respBodyLog = string(bodyBytes[:2000]) + "...(truncated)"
		} else {
			respBodyLog = string(bodyBytes)
		}
	}

	logger.Log.Info("provider response",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("status", resp.Status),
		zap.Duration("duration", duration),
		zap.String("body", respBodyLog),
	)

	return resp, nil
}

func redactedHeaders(h http.Header) string {
	clone := h.Clone()
	if clone.Get("Authorization") != "" {
		clone.Set("Authorization", "[redacted]")
	}
	var buf bytes.Buffer
	clone.Write(&buf)
	return buf.String()
}

// NewHTTPClient returns a new http.Client with logging enabled. The timeout
// is the only cancellation applied to provider calls; a timed-out charge is
// outcome-unknown, not failed.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &LoggingTransport{
			Transport: http.DefaultTransport,
		},
	}
}
