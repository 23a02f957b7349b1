package stuffit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gostuffit/stuffit/internal/bitreader"
	"github.com/gostuffit/stuffit/internal/crc16"
	"github.com/gostuffit/stuffit/internal/method13"
	"github.com/gostuffit/stuffit/internal/method14"
	"github.com/gostuffit/stuffit/internal/sectionreader"
)

// decompressFork dispatches on the fork's compression method: encrypted
// forks are refused outright, method 0 is a verbatim copy, methods 13/14
// run the corresponding decoder, anything else is unsupported. The result
// is always CRC-16 verified against the fork descriptor before returning.
func decompressFork(backing io.ReaderAt, fork ForkDescriptor) ([]byte, error) {
	if fork.Compression.encrypted() {
		return nil, ErrEncrypted
	}

	sub := sectionreader.Section(backing, fork.Offset, int64(fork.CompressedSize))
	out := make([]byte, fork.UncompressedSize)

	switch fork.Compression.method() {
	case 0:
		if fork.CompressedSize != fork.UncompressedSize {
			return nil, fmt.Errorf("%w: method 0 size mismatch", ErrCorruptStream)
		}
		if err := readExact(sub, 0, out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}

	case 13:
		br := bitreader.New(bufio.NewReader(io.NewSectionReader(sub, 0, int64(fork.CompressedSize))))
		if err := method13.Decode(br, out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
		}

	case 14:
		br := bitreader.New(bufio.NewReader(io.NewSectionReader(sub, 0, int64(fork.CompressedSize))))
		if err := method14.Decode(br, out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
		}

	default:
		return nil, fmt.Errorf("%w: method %d", ErrUnsupportedMethod, fork.Compression.method())
	}

	if crc16.Checksum(out) != fork.CRC {
		return nil, ErrPayloadCRCMismatch
	}
	return out, nil
}
