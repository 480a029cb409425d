package frappe

import "time"

const (
	// DefaultReadTimeout bounds upstream read calls.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds upstream create/submit calls.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the sustained upstream rate limit.
	// The doctype link filter issues one probe per candidate doctype,
	// so an unthrottled listing could hammer upstream.
	DefaultRequestsPerSecond = 10.0

	// DefaultBurstSize is the rate limiter burst allowance.
	DefaultBurstSize = 20
)

// Credentials is one upstream login. Immutable once constructed;
// updates replace the whole value.
type Credentials struct {
	Username string
	Password string
}

// Config configures the connector.
type Config struct {
	// BaseURL is the upstream ERP root, e.g. "https://erp.example.net".
	BaseURL string

	// Credentials is the upstream service account.
	Credentials Credentials

	// ReadTimeout and WriteTimeout bound individual upstream calls.
	// Zero selects the defaults.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// RequestsPerSecond and BurstSize configure the upstream rate
	// limiter. Zero selects the defaults.
	RequestsPerSecond float64
	BurstSize         int
}

func (c Config) withDefaults() Config {
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.BurstSize <= 0 {
		c.BurstSize = DefaultBurstSize
	}
	return c
}
