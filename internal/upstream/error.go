package upstream

import "fmt"

// Error reports a non-success response from an external API, keeping the raw
// body for diagnostics. It is deliberately the only error shape shared by
// every upstream client.
type Error struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Service, e.StatusCode, e.Body)
}
