package gatelog

import (
	"errors"
	"fmt"
)

// The only failures gatelog reports. A nil error is the Ok result. Errors
// returned by the package may wrap one of these with additional context; use
// errors.Is to test for them.
var (
	ErrNotInitialized     = errors.New("gatelog: not initialized")
	ErrAlreadyInitialized = errors.New("gatelog: already initialized")
	ErrInvalidParameter   = errors.New("gatelog: invalid parameter")
)

// Result is the numeric form of an outcome, for callers that report status
// codes rather than errors (firmware shells, admin protocols).
type Result uint8

const (
	ResultOK Result = iota
	ResultNotInitialized
	ResultAlreadyInitialized
	ResultInvalidParameter
)

var resultNames = [...]string{"OK", "NOT_INITIALIZED", "ALREADY_INITIALIZED", "INVALID_PARAMETER"}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return fmt.Sprintf("Result(%d)", uint8(r))
}

// ResultOf maps err to its Result. Errors that do not wrap one of the gatelog
// sentinels map to ResultInvalidParameter.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrNotInitialized):
		return ResultNotInitialized
	case errors.Is(err, ErrAlreadyInitialized):
		return ResultAlreadyInitialized
	default:
		return ResultInvalidParameter
	}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}
