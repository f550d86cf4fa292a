package config

import (
	"strings"
	"time"
)

type ClientConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetRefreshLeadFactor() float64
	GetMinRefreshLead() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

// GetAPIBaseURL returns the REST backend origin, without a trailing slash.
func (Client) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv("API_URL", "http://localhost:3001/api"), "/")
}

func (Client) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}

// GetRefreshLeadFactor is the fraction of a token's remaining lifetime
// after which a proactive refresh is scheduled.
func (Client) GetRefreshLeadFactor() float64 {
	return 0.8
}

func (Client) GetMinRefreshLead() time.Duration {
	return 5 * time.Second
}
