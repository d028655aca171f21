package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"learnrag/internal/metrics"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.Code, e.Body)
}

type fetcher struct {
	service    string
	http       *http.Client
	maxRetries int
	log        zerolog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// getJSON fetches url into dst, retrying 429, 5xx and transport errors.
func (f *fetcher) getJSON(ctx context.Context, url string, dst any) error {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			if err := f.sleep(ctx, backoff(attempt)); err != nil {
				return err
			}
		}
		retry, err := f.once(ctx, url, dst)
		metrics.RecordExternalRequest(f.service, err)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			break
		}
		f.log.Debug().Err(err).Int("attempt", attempt+1).Msg("request failed, retrying")
	}
	return lastErr
}

func (f *fetcher) once(ctx context.Context, url string, dst any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.http.Do(req)
	if err != nil {
		return ctx.Err() == nil, fmt.Errorf("%s: %w", f.service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return true, fmt.Errorf("%s: reading body: %w", f.service, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retry, &StatusError{Service: f.service, Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return false, fmt.Errorf("%s: decoding response: %w", f.service, err)
	}
	return false, nil
}

func backoff(attempt int) time.Duration {
	d := 200 * time.Millisecond << (attempt - 1)
	if d > 5*time.Second {
		return 5 * time.Second
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
