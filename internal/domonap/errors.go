package domonap

import "errors"

// Domain errors for the domonap package.
var (
	// ErrRequestFailed is returned when a request could not be sent or the
	// response could not be read.
	ErrRequestFailed = errors.New("domonap: request failed")

	// ErrInvalidResponse is returned when the vendor response body is not
	// the expected JSON shape.
	ErrInvalidResponse = errors.New("domonap: invalid response")
)
