package method13

import (
	"errors"
	"fmt"
)

// ErrCorrupt is returned for any internal inconsistency in a method-13
// stream: an undefined control byte, an undefined nested-tree symbol, or
// input exhausted before the expected output length was produced.
var ErrCorrupt = errors.New("method13: corrupt stream")

func errCorruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
