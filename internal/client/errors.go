package client

import (
	"errors"
	"fmt"
)

// APIError is a failure reported by the API: a non-2xx status, or a body
// carrying an error field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.Status)
	}
	return e.Message
}

// IsAPIError reports whether err came back from the API rather than the transport.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
