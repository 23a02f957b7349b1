package stuffit

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gostuffit/stuffit/internal/crc16"
)

// Accepted primary container magics.
var validMagics = [][4]byte{
	{'S', 'I', 'T', '!'},
	{'S', 'T', '6', '5'},
	{'S', 'T', '5', '0'},
	{'S', 'T', '6', '0'},
	{'S', 'T', 'i', 'n'},
	{'S', 'T', 'i', '2'},
	{'S', 'T', 'i', '3'},
	{'S', 'T', 'i', '4'},
	{'S', 'T', '4', '6'},
}

const secondaryMagic = "rLau"
const entryHeaderSize = 112

// index is the built-once, read-only archive directory: entries and
// Finder metadata keyed by normalized entry path.
type index struct {
	entries  map[string]FileEntry
	metadata map[string]FinderInfo
	// display preserves the original-case path for each normalized key,
	// so List() can hand back something a human would recognize.
	display map[string]string
}

func newIndex() *index {
	return &index{
		entries:  make(map[string]FileEntry),
		metadata: make(map[string]FinderInfo),
		display:  make(map[string]string),
	}
}

func (ix *index) insert(path string, entry FileEntry, meta FinderInfo) {
	key := pathKey(path)
	ix.entries[key] = entry
	ix.metadata[key] = meta
	ix.display[key] = path
}

// parseContainer validates the container header, walks the entry table,
// and returns a built index. Only the classic 112-byte old-format entry
// header is supported; the newer SIT5 container variant is out of scope.
func parseContainer(r io.ReaderAt, opts Options) (*index, error) {
	var head [22]byte
	if err := readExact(r, 0, head[:]); err != nil {
		return nil, fmt.Errorf("%w: reading container header: %v", ErrTruncated, err)
	}

	var magicOK bool
	var magic [4]byte
	copy(magic[:], head[0:4])
	for _, m := range validMagics {
		if magic == m {
			magicOK = true
			break
		}
	}
	if !magicOK {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic[:])
	}

	archiveSize := int64(binary.BigEndian.Uint32(head[6:10]))
	if string(head[10:14]) != secondaryMagic {
		return nil, fmt.Errorf("%w: secondary magic %q", ErrBadMagic, head[10:14])
	}
	// head[14]: version, head[15:22]: reserved -- read and ignored.

	ix := newIndex()
	var folderStack []string
	pos := int64(len(head))

	for pos < archiveSize {
		var hdr [entryHeaderSize]byte
		if err := readExact(r, pos, hdr[:]); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: entry header at offset %d", ErrTruncated, pos)
			}
			return nil, err
		}

		if !crc16.VerifyWithField(hdr[:], 110) {
			return nil, fmt.Errorf("%w: entry header at offset %d", ErrHeaderCRCMismatch, pos)
		}

		resCompression := AlgID(hdr[0])
		dataCompression := AlgID(hdr[1])
		nameLen := int(hdr[2])
		if nameLen > 31 {
			return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrNameTooLong, nameLen, pos)
		}
		name := string(hdr[3 : 3+nameLen])

		var finder FinderInfo
		copy(finder[:], hdr[66:82])

		resUncompressedSize := binary.BigEndian.Uint32(hdr[84:88])
		dataUncompressedSize := binary.BigEndian.Uint32(hdr[88:92])
		resCompressedSize := binary.BigEndian.Uint32(hdr[92:96])
		dataCompressedSize := binary.BigEndian.Uint32(hdr[96:100])
		resCRC := binary.BigEndian.Uint16(hdr[100:102])
		dataCRC := binary.BigEndian.Uint16(hdr[102:104])

		dirCheck := dataCompression & 0x6f
		switch {
		case dirCheck == algDirStart:
			if !opts.FlattenTree {
				folderStack = append(folderStack, name+pathSeparator)
			}
			pos += entryHeaderSize
			continue

		case dirCheck == algDirEnd:
			if !opts.FlattenTree && len(folderStack) > 0 {
				folderStack = folderStack[:len(folderStack)-1]
			}
			pos += entryHeaderSize
			continue
		}

		var prefix string
		if !opts.FlattenTree {
			for _, p := range folderStack {
				prefix += p
			}
		}
		path := joinPath(prefix, name)

		resOffset := pos + entryHeaderSize
		dataOffset := resOffset + int64(resCompressedSize)

		entry := FileEntry{
			ResFork: ForkDescriptor{
				UncompressedSize: resUncompressedSize,
				CompressedSize:   resCompressedSize,
				Offset:           resOffset,
				CRC:              resCRC,
				Compression:      resCompression,
			},
			DataFork: ForkDescriptor{
				UncompressedSize: dataUncompressedSize,
				CompressedSize:   dataCompressedSize,
				Offset:           dataOffset,
				CRC:              dataCRC,
				Compression:      dataCompression,
			},
		}
		ix.insert(path, entry, finder)

		pos = dataOffset + int64(dataCompressedSize)
	}

	return ix, nil
}

func readExact(r io.ReaderAt, off int64, buf []byte) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil {
		err = io.EOF
	}
	return err
}
