package stuffit

// AlgID is a StuffIt per-fork compression/folder-marker byte. The low
// nibble names the compression method; the high nibble carries
// encryption flags (top bit: entry-level, bit 4: contained-file-level).
// The two reserved folder-marker values below are matched after masking
// off those two encryption bits (a & 0x6f).
type AlgID uint8

const (
	algDirStart AlgID = 32
	algDirEnd   AlgID = 33
)

func (a AlgID) isDirStart() bool { return a&0x6f == algDirStart }
func (a AlgID) isDirEnd() bool   { return a&0x6f == algDirEnd }
func (a AlgID) method() AlgID    { return a & 0x0f }
func (a AlgID) encrypted() bool  { return a&0xf0 != 0 }

// ForkDescriptor describes one fork (data or resource) of an archive
// entry.
type ForkDescriptor struct {
	UncompressedSize uint32
	CompressedSize   uint32
	Offset           int64
	CRC              uint16
	Compression      AlgID
}

// Empty reports whether the fork is absent, per the data model invariant
// that uncompressed_size == 0 means absent.
func (f ForkDescriptor) Empty() bool { return f.UncompressedSize == 0 }

// FileEntry is one archive member: a data fork and a resource fork,
// either of which may be empty.
type FileEntry struct {
	DataFork ForkDescriptor
	ResFork  ForkDescriptor
}

// FinderInfo is the raw 16-byte classic-Mac Finder metadata block carried
// per entry: 4-byte type code, 4-byte creator code, 2-byte big-endian
// flags, and 6 bytes of pass-through data (the creation/modification
// dates the container parser reads and discards).
type FinderInfo [16]byte

func (f FinderInfo) Type() [4]byte    { return [4]byte(f[0:4]) }
func (f FinderInfo) Creator() [4]byte { return [4]byte(f[4:8]) }
func (f FinderInfo) Flags() uint16    { return uint16(f[8])<<8 | uint16(f[9]) }

// Options configures Open. The zero value is the default: tree
// preserved, no decode cache.
type Options struct {
	// FlattenTree reduces every entry path to its last component,
	// discarding the original folder nesting.
	FlattenTree bool

	// CacheDecodedForks enables a process-wide cache of decoded fork
	// bytes (see cache.go), keyed by archive identity and fork offset.
	// Safe across archive handles: the cache never stores decoder
	// scratch state, only finished, CRC-verified output.
	CacheDecodedForks bool
}
