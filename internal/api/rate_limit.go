package api

import (
	"net/http"
	"strconv"
	"strings"
)

// RateLimitInfo mirrors the hourly quota headers of the last successful
// call.
type RateLimitInfo struct {
	Limit     *int
	Remaining *int
}

// Meta returns a JSON-ready map for CLI output metadata.
func (r *RateLimitInfo) Meta() map[string]any {
	if r == nil {
		return nil
	}
	meta := map[string]any{}
	if r.Limit != nil {
		meta["limit"] = *r.Limit
	}
	if r.Remaining != nil {
		meta["remaining"] = *r.Remaining
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// RateLimit returns a copy of the most recent counters, or nil if no
// successful call has reported them yet.
func (c *Client) RateLimit() *RateLimitInfo {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()
	if c.lastRateLimit == nil {
		return nil
	}
	var copyInfo RateLimitInfo
	if c.lastRateLimit.Limit != nil {
		v := *c.lastRateLimit.Limit
		copyInfo.Limit = &v
	}
	if c.lastRateLimit.Remaining != nil {
		v := *c.lastRateLimit.Remaining
		copyInfo.Remaining = &v
	}
	return &copyInfo
}

// SetRateLimitInfo sets rate limit info (primarily for tests).
func (c *Client) SetRateLimitInfo(info *RateLimitInfo) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()
	c.lastRateLimit = info
}

// recordRateLimit overwrites each counter present in h. Counters missing
// from h keep their previous value.
func (c *Client) recordRateLimit(h http.Header) {
	info := parseRateLimitInfo(h)
	if info == nil {
		return
	}
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()
	if c.lastRateLimit == nil {
		c.lastRateLimit = &RateLimitInfo{}
	}
	if info.Limit != nil {
		c.lastRateLimit.Limit = info.Limit
	}
	if info.Remaining != nil {
		c.lastRateLimit.Remaining = info.Remaining
	}
}

func parseRateLimitInfo(h http.Header) *RateLimitInfo {
	if h == nil {
		return nil
	}
	info := &RateLimitInfo{}
	if v, err := strconv.Atoi(firstHeader(h, "X-Ratelimit-Limit", "Per-Hour-Limit")); err == nil {
		info.Limit = &v
	}
	if v, err := strconv.Atoi(firstHeader(h, "X-Ratelimit-Remaining", "Remaining")); err == nil {
		info.Remaining = &v
	}
	if info.Limit == nil && info.Remaining == nil {
		return nil
	}
	return info
}

func firstHeader(h http.Header, keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(h.Get(key))
		if value != "" {
			return value
		}
	}
	return ""
}
