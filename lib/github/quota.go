package github

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Quota is a snapshot of the remaining GitHub API budget.
type Quota struct {
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Used      int    `json:"used"`
	ResetAt   string `json:"resetAt,omitempty"`
}

type rateLimitBucket struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
	Used      int   `json:"used"`
}

// FetchQuota reads the current rate limit status. Visibility only: any
// failure yields nil rather than an error.
func (s *Store) FetchQuota(ctx context.Context) *Quota {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/rate_limit", nil)
	if err != nil {
		return nil
	}

	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.transport.Client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var payload struct {
		Resources struct {
			Core   *rateLimitBucket `json:"core"`
			Search *rateLimitBucket `json:"search"`
		} `json:"resources"`
	}
	err = json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil {
		return nil
	}

	bucket := payload.Resources.Core
	if bucket == nil {
		bucket = payload.Resources.Search
	}
	if bucket == nil {
		return nil
	}

	quota := &Quota{
		Limit:     bucket.Limit,
		Remaining: bucket.Remaining,
		Used:      bucket.Used,
	}
	if bucket.Reset != 0 {
		quota.ResetAt = time.Unix(bucket.Reset, 0).UTC().Format(time.RFC3339)
	}

	return quota
}
