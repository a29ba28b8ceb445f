package portal

import "time"

const (
	providerName       = "portal"
	defaultHTTPTimeout = 5 * time.Second
	maxErrorBody       = 512
)
