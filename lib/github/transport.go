package github

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

const (
	// GitHub signals an exhausted quota with 403 or 429. Additional
	// attempts after the first call.
	defaultMaxRetries = 3

	// Hard ceiling on a single wait, whatever the reset header says.
	maxWait = 60 * time.Second

	fallbackWait = 60 * time.Second
)

// Transport issues HTTP calls against a rate-limited API, waiting out the
// quota window and retrying when the remote answers 403/429. The wait is
// reset-time aware rather than exponential: the x-ratelimit-reset header is
// the accurate signal for quota-windowed APIs. Retries exhausted means the
// last failing response is returned, not an error; classifying it is the
// caller's job. Any other status is returned on the first attempt.
type Transport struct {
	Client     *http.Client
	MaxRetries int

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

func NewTransport() *Transport {
	return &Transport{
		Client:     &http.Client{Timeout: 30 * time.Second},
		MaxRetries: defaultMaxRetries,
		sleep:      sleepCtx,
		now:        time.Now,
	}
}

func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := t.Client.Do(req)
		if err != nil {
			return nil, err
		}

		if !isRateLimited(resp.StatusCode) || attempt >= t.MaxRetries {
			return resp, nil
		}

		wait := t.waitFor(resp)
		resp.Body.Close()

		err = t.sleep(req.Context(), wait)
		if err != nil {
			return nil, err
		}
	}
}

func isRateLimited(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests
}

func (t *Transport) waitFor(resp *http.Response) time.Duration {
	wait := fallbackWait

	if reset := resp.Header.Get("x-ratelimit-reset"); reset != "" {
		resetAt, err := strconv.ParseInt(reset, 10, 64)
		if err == nil {
			wait = time.Unix(resetAt, 0).Sub(t.now())
		}

	} else if retryAfter := resp.Header.Get("retry-after"); retryAfter != "" {
		secs, err := strconv.Atoi(retryAfter)
		if err == nil {
			wait = time.Duration(secs) * time.Second
		}
	}

	if wait < 0 {
		wait = 0
	}
	if wait > maxWait {
		wait = maxWait
	}

	return wait
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
