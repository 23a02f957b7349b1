package huffman12

import (
	"bytes"
	"testing"

	"github.com/gostuffit/stuffit/internal/bitreader"
)

// bitWriter is a minimal LSB-first bit sink used only by these tests to
// build fixtures for the decoder under test.
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

func canonicalCodes(lengths []int) map[int]struct{ code uint32; length int } {
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
	out := make(map[int]struct {
		code   uint32
		length int
	})
	var code uint32
	prev := 0
	for _, s := range syms {
		code <<= uint(s.length - prev)
		prev = s.length
		out[s.symbol] = struct {
			code   uint32
			length int
		}{code, s.length}
		code++
	}
	return out
}

func reverse(v uint32, n int) uint32 {
	var out uint32
	for i := 0; i < n; i++ {
		out = (out << 1) | (v & 1)
		v >>= 1
	}
	return out
}

func TestRoundTripShortCodes(t *testing.T) {
	lengths := []int{2, 2, 2, 2} // 4 symbols, all <= 12 bits: pure fast path
	table, err := New(lengths)
	if err != nil {
		t.Fatal(err)
	}
	codes := canonicalCodes(lengths)

	var w bitWriter
	order := []int{0, 3, 1, 2, 0}
	for _, s := range order {
		c := codes[s]
		w.writeBits(reverse(c.code, c.length), c.length)
	}

	br := bitreader.New(bytes.NewReader(w.bytes()))
	for _, want := range order {
		got, err := table.Decode(br)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != want {
			t.Fatalf("got symbol %d, want %d", got, want)
		}
	}
}

func TestRoundTripOverflowCodes(t *testing.T) {
	// Symbol 0 short, symbols 1-3 long enough to force the overflow tree
	// (length > 12).
	lengths := []int{1, 13, 13, 14}
	table, err := New(lengths)
	if err != nil {
		t.Fatal(err)
	}
	codes := canonicalCodes(lengths)

	var w bitWriter
	order := []int{1, 0, 3, 2, 0}
	for _, s := range order {
		c := codes[s]
		w.writeBits(reverse(c.code, c.length), c.length)
	}

	br := bitreader.New(bytes.NewReader(w.bytes()))
	for _, want := range order {
		got, err := table.Decode(br)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != want {
			t.Fatalf("got symbol %d, want %d", got, want)
		}
	}
}

func TestCorruptSlotErrors(t *testing.T) {
	// A single symbol with a 12-bit code occupies exactly one fast-table
	// slot (stride 1<<12 == fastSize); every other slot is unassigned.
	table, err := New([]int{12})
	if err != nil {
		t.Fatal(err)
	}

	br := bitreader.New(bytes.NewReader([]byte{0xff, 0x0f}))
	if _, err := table.Decode(br); err != ErrCorrupt {
		t.Fatalf("got err %v, want ErrCorrupt", err)
	}
}
