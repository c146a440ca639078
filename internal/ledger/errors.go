package ledger

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures: no response from the ledger
// at all. Callers surface these as a transient notice and keep the prior
// snapshot in view.
var ErrUnavailable = errors.New("ledger unavailable")

// RemoteError is a response the ledger did send: a status code and whatever
// message the server attached.
type RemoteError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("ledger rejected request (%d)", e.Status)
}

// IsNotFound reports whether err is the ledger saying the resource does not
// exist.
func IsNotFound(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Status == 404
}

// IsRejected reports whether err is a 4xx validation rejection carrying a
// server-supplied message, as opposed to a transport failure or server fault.
func IsRejected(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Status >= 400 && remote.Status < 500
}
