package domain

import "fmt"

// PlatformError is an error the platform itself reported (as opposed to
// a transport failure on the way there). Adapters wrap API-level errors
// in this type so the gateway can tell the two apart.
type PlatformError struct {
	Code    int
	Message string
}

func (e *PlatformError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("platform error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("platform error: %s", e.Message)
}
