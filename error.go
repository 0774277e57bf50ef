package cache

// SentinelError is an error.
type SentinelError string

const (
	// ErrInvalidConfig indicates non-positive Expire or Bias.
	ErrInvalidConfig = SentinelError("invalid cache configuration")

	// ErrClosed indicates cache was closed and deactivated.
	ErrClosed = SentinelError("cache is closed")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
