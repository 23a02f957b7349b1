package method14

import (
	"errors"
	"fmt"
)

// ErrCorrupt is returned for any internal inconsistency in a method-14
// stream.
var ErrCorrupt = errors.New("method14: corrupt stream")

func errCorruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
