package metadata

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxAttempts bounds the fetch retry loop: the initial try plus two retries.
const maxAttempts = 3

// retryBackoff is the pause between transport-failure retries.
const retryBackoff = 500 * time.Millisecond

// GetJSON fetches rawURL and decodes the JSON body into dest.
//
// Transport failures are retried up to two times. A non-OK status or a body
// that fails to parse is returned immediately; retrying will not change what
// the server said.
func GetJSON(ctx context.Context, client *http.Client, limiter *rate.Limiter, logger *slog.Logger, rawURL string, dest any) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if logger != nil {
				logger.Debug("retrying provider request",
					"url", rawURL,
					"attempt", attempt,
					"error", lastErr,
				)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		err = func() error {
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %d", resp.StatusCode)
			}
			if err := json.UnmarshalRead(resp.Body, dest); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			return nil
		}()
		if err != nil {
			return err
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}
