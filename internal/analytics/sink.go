package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ZapSink writes events to the structured log. Used when no collector
// endpoint is configured.
type ZapSink struct{ Log *zap.Logger }

func (s ZapSink) Event(name string, params Params) {
	if s.Log == nil {
		return
	}
	s.Log.Info("analytics event", zap.String("event", name), zap.Any("params", params))
}

// HTTPSink posts events to an external collector. Failures are logged and
// dropped; the flow never waits on or retries tracking.
type HTTPSink struct {
	URL string
	Log *zap.Logger

	hc *http.Client
}

func NewHTTPSink(url string, log *zap.Logger) *HTTPSink {
	return &HTTPSink{
		URL: url,
		Log: log,
		hc:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (s *HTTPSink) Event(name string, params Params) {
	body, err := json.Marshal(map[string]any{"event": name, "params": params})
	if err != nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := s.hc.Do(req)
		if err != nil {
			if s.Log != nil {
				s.Log.Debug("analytics post failed", zap.Error(err))
			}
			return
		}
		_ = resp.Body.Close()
	}()
}
