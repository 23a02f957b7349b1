package method13

import (
	"bytes"
	"testing"

	"github.com/gostuffit/stuffit/internal/bitreader"
)

type bitWriter struct {
	buf  []byte
	cur  byte
	nbit int
}

func (w *bitWriter) writeBits(v uint32, n int) {
	for i := 0; i < n; i++ {
		bit := byte((v >> i) & 1)
		w.cur |= bit << w.nbit
		w.nbit++
		if w.nbit == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur, w.nbit = 0, 0
		}
	}
}

func (w *bitWriter) bytes() []byte {
	if w.nbit > 0 {
		return append(append([]byte{}, w.buf...), w.cur)
	}
	return w.buf
}

// canonicalCode reconstructs the canonical code for symbol among lengths,
// mirroring internal/huffman12.New's construction exactly (same package
// family, independently re-derived here so the test doesn't just call
// back into the code under test).
func canonicalCode(lengths []int, symbol int) (code uint32, length int) {
	type sym struct{ length, symbol int }
	var syms []sym
	for s, l := range lengths {
		if l > 0 {
			syms = append(syms, sym{l, s})
		}
	}
	for i := 0; i < len(syms); i++ {
		for j := i + 1; j < len(syms); j++ {
			if syms[j].length < syms[i].length || (syms[j].length == syms[i].length && syms[j].symbol < syms[i].symbol) {
				syms[i], syms[j] = syms[j], syms[i]
			}
		}
	}
	var c uint32
	prev := 0
	for _, s := range syms {
		c <<= uint(s.length - prev)
		prev = s.length
		if s.symbol == symbol {
			return c, s.length
		}
		c++
	}
	panic("symbol not found")
}

func reverseBits(v uint32, n int) uint32 {
	var out uint32
	for i := 0; i < n; i++ {
		out = (out << 1) | (v & 1)
		v >>= 1
	}
	return out
}

func TestStaticModeLiteralRoundTrip(t *testing.T) {
	const profileIdx = 0
	primaryLens, _, _, err := staticProfile(profileIdx)
	if err != nil {
		t.Fatalf("staticProfile: %v", err)
	}

	var w bitWriter
	w.writeBits(uint32(0x10), 8) // ctrl: hi nibble 1 -> static profile 0

	want := []byte("AB")
	for _, b := range want {
		code, length := canonicalCode(primaryLens, int(b))
		w.writeBits(reverseBits(code, length), length)
	}

	br := bitreader.New(bytes.NewReader(w.bytes()))
	out := make([]byte, len(want))
	if err := Decode(br, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestStaticProfileBoundsAssertion(t *testing.T) {
	if _, _, _, err := staticProfile(len(staticStaticBits)); err == nil {
		t.Fatal("expected an error for a profile index past the end of staticStaticBits")
	}
	if _, _, _, err := staticProfile(-1); err == nil {
		t.Fatal("expected an error for a negative profile index")
	}
	if _, _, _, err := staticProfile(len(staticStaticBits) - 1); err != nil {
		t.Fatalf("staticProfile(%d): %v", len(staticStaticBits)-1, err)
	}
}

func TestBadControlByteHighNibble(t *testing.T) {
	var w bitWriter
	w.writeBits(uint32(0x60), 8) // high nibble 6: invalid
	br := bitreader.New(bytes.NewReader(w.bytes()))
	out := make([]byte, 1)
	if err := Decode(br, out); err == nil {
		t.Fatal("expected an error for an invalid control byte")
	}
}

func TestBackReferenceRoundTrip(t *testing.T) {
	const profileIdx = 1
	primaryLens, secondaryLens, offsetLens, err := staticProfile(profileIdx)
	if err != nil {
		t.Fatalf("staticProfile: %v", err)
	}

	var w bitWriter
	w.writeBits(uint32(0x20), 8) // ctrl: hi nibble 2 -> static profile 1

	// Literal 'X' via the primary (after-literal) tree.
	code, length := canonicalCode(primaryLens, int('X'))
	w.writeBits(reverseBits(code, length), length)

	// A length-3 back-reference one byte back ("XXX"). The active tree
	// right after a literal is still the *first* primary tree (the
	// secondary tree only becomes active after a back-reference), so
	// this length symbol is coded with primaryLens too.
	lenSym := 0x100 + (3 - 3) // length 3 -> symbol 0x100
	code, length = canonicalCode(primaryLens, lenSym)
	w.writeBits(reverseBits(code, length), length)
	_ = secondaryLens

	// offset == 1 -> raw_offset == 0 -> prefix symbol 0 (no extra bits).
	code, length = canonicalCode(offsetLens, 0)
	w.writeBits(reverseBits(code, length), length)

	br := bitreader.New(bytes.NewReader(w.bytes()))
	out := make([]byte, 4)
	if err := Decode(br, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(out) != "XXXX" {
		t.Fatalf("got %q, want %q", out, "XXXX")
	}
}
