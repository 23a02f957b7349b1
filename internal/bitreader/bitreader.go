// Package bitreader implements the LSB-first bit stream shared by the
// StuffIt method 13 and method 14 decompressors.
//
// Bits are consumed from the least-significant side of each input byte
// first; a multi-bit read concatenates bits in that same order, low byte
// first. Unlike a plain whole-byte reader, this one supports peeking
// ahead without consuming, which method 13's 12-bit fast path needs.
package bitreader

import "io"

// Reader is an LSB-first bit stream over a byte source. It is read-only and
// one-way: once bits are taken they cannot be put back.
type Reader struct {
	src io.ByteReader

	bits uint32 // low n bits are "ready"; bits above them are zero
	n    int    // number of valid low bits in bits
	eof  bool
}

// New wraps a byte source for LSB-first bit access.
func New(src io.ByteReader) *Reader {
	return &Reader{src: src}
}

// fill ensures at least n valid bits are buffered, or that EOS has been
// reached. Past EOS, the buffer is padded with zero bits so peek/take never
// fail outright; callers must consult Eos to detect the true end.
func (r *Reader) fill(n int) {
	for r.n < n {
		b, err := r.src.ReadByte()
		if err != nil {
			r.eof = true
			return
		}
		r.bits |= uint32(b) << r.n
		r.n += 8
	}
}

// Peek returns the next n bits (1 <= n <= 16) without consuming them.
// Bits beyond end-of-stream read as zero.
func (r *Reader) Peek(n int) uint16 {
	r.fill(n)
	return uint16(r.bits & (1<<uint(n) - 1))
}

// Take consumes and returns the next n bits (0 <= n <= 16).
func (r *Reader) Take(n int) uint16 {
	if n == 0 {
		return 0
	}
	v := r.Peek(n)
	r.bits >>= uint(n)
	r.n -= n
	if r.n < 0 {
		r.n = 0
	}
	return v
}

// Take1 consumes and returns a single bit.
func (r *Reader) Take1() int {
	return int(r.Take(1))
}

// AlignToByte discards bits up to the next byte boundary, a no-op if
// already aligned. Method 14 calls this once per block; method 13 never
// calls it mid-stream.
func (r *Reader) AlignToByte() {
	if extra := r.n % 8; extra != 0 {
		r.Take(extra)
	}
}

// Eos reports whether the underlying byte source has been exhausted, i.e.
// no more real input bits can be supplied. Bits already buffered before
// exhaustion are still returned faithfully by Take; only reads past the
// buffer are zero-padded.
func (r *Reader) Eos() bool {
	r.fill(1)
	return r.eof && r.n == 0
}
