// Package huffman12 implements the canonical-Huffman decoder shared by
// StuffIt methods 13 and 14: a 4096-entry direct lookup table keyed by the
// next 12 peeked bits, with an overflow binary tree for codes longer than
// 12 bits.
//
// Method 13 builds three of these (the two "primary" trees and the
// offset-prefix tree), plus its fixed nested codelength tree in dynamic
// mode; method 14 builds two per block plus a nested codelength sub-tree.
// All of these uses share this one construction rather than each
// reimplementing canonical-code assignment.
package huffman12

import (
	"errors"
	"sort"

	"github.com/gostuffit/stuffit/internal/bitreader"
)

// ErrCorrupt is returned when a decode walks into an unassigned table slot
// or overflow-tree node — the bitstream named a code that construction
// never assigned.
var ErrCorrupt = errors.New("huffman12: corrupt code")

const (
	fastBits = 12
	fastSize = 1 << fastBits
	leafFlag = int32(1) << 30
)

type fastEntry struct {
	sym  int32 // valid when bits > 0
	bits int8  // 1..12 for a direct hit; 0 means "consult node"
	node int32 // overflow-tree root for this 12-bit prefix; -1 if none
}

type overflowNode struct {
	child [2]int32 // -1 unset; leafFlag bit set means a leaf symbol
}

// Table is a constructed canonical-Huffman decoder for one alphabet.
type Table struct {
	fast     [fastSize]fastEntry
	overflow []overflowNode
}

// New builds a Table from a sequence of codelengths indexed by symbol.
// A length of 0 means the symbol is absent from the alphabet. Symbols are
// assigned canonical codes in (length, symbol) order per the standard
// canonical-Huffman rule, then written into the direct table (bit-reversed
// for LSB-first emission) or, for lengths beyond 12 bits, into an overflow
// tree keyed by the code's low 12 bits.
func New(lengths []int) (*Table, error) {
	t := &Table{}
	for i := range t.fast {
		t.fast[i].node = -1
	}

	type sym struct {
		length, symbol int
	}
	var syms []sym
	for s, l := range lengths {
		if l > 0 {
			syms = append(syms, sym{l, s})
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].length != syms[j].length {
			return syms[i].length < syms[j].length
		}
		return syms[i].symbol < syms[j].symbol
	})

	var code uint32
	prevLen := 0
	for _, s := range syms {
		code <<= uint(s.length - prevLen)
		prevLen = s.length
		rev := reverseBits(code, s.length)
		t.place(rev, s.length, s.symbol)
		code++
	}
	return t, nil
}

func reverseBits(v uint32, length int) uint32 {
	var out uint32
	for i := 0; i < length; i++ {
		out = (out << 1) | (v & 1)
		v >>= 1
	}
	return out
}

func (t *Table) place(rev uint32, length, symbol int) {
	if length <= fastBits {
		stride := 1 << uint(length)
		for slot := int(rev); slot < fastSize; slot += stride {
			t.fast[slot] = fastEntry{sym: int32(symbol), bits: int8(length)}
		}
		return
	}

	prefix := int(rev & (fastSize - 1))
	if t.fast[prefix].node == -1 {
		t.overflow = append(t.overflow, overflowNode{child: [2]int32{-1, -1}})
		t.fast[prefix].node = int32(len(t.overflow) - 1)
	}
	node := t.fast[prefix].node

	extra := rev >> fastBits
	extraBits := length - fastBits
	for i := 0; i < extraBits; i++ {
		bit := (extra >> uint(i)) & 1
		last := i == extraBits-1
		child := t.overflow[node].child[bit]
		if last {
			t.overflow[node].child[bit] = leafFlag | int32(symbol)
			return
		}
		if child == -1 || child&leafFlag != 0 {
			t.overflow = append(t.overflow, overflowNode{child: [2]int32{-1, -1}})
			child = int32(len(t.overflow) - 1)
			t.overflow[node].child[bit] = child
		}
		node = child
	}
}

// Decode reads one symbol from br.
func (t *Table) Decode(br *bitreader.Reader) (int, error) {
	prefix := br.Peek(fastBits)
	e := t.fast[prefix]
	if e.bits > 0 {
		br.Take(int(e.bits))
		return int(e.sym), nil
	}
	if e.node == -1 {
		return 0, ErrCorrupt
	}
	br.Take(fastBits)

	node := e.node
	for {
		bit := br.Take1()
		c := t.overflow[node].child[bit]
		if c == -1 {
			return 0, ErrCorrupt
		}
		if c&leafFlag != 0 {
			return int(c &^ leafFlag), nil
		}
		node = c
	}
}
