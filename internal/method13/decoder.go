// Package method13 implements the StuffIt "TableHuff" decompressor
// (compression method 13): a nested-Huffman, LZSS-style decoder over a
// 64 KiB sliding window. See the comment on infoLengths in tables.go for
// the reference data of this method that couldn't be carried over
// verbatim. internal/huffman12 supplies the canonical-Huffman machinery
// shared by all three of this method's trees.
package method13

import (
	"github.com/gostuffit/stuffit/internal/bitreader"
	"github.com/gostuffit/stuffit/internal/huffman12"
)

// WindowSize is the fixed LZSS back-reference window for method 13.
const WindowSize = 1 << 16

// Decode reads a method-13 stream from br and writes exactly len(out)
// decompressed bytes into out, or returns an error. out must be
// pre-sized to the fork's uncompressed_size.
func Decode(br *bitreader.Reader, out []byte) error {
	ctrl := byte(br.Take(8))
	hi := ctrl >> 4
	if hi > 5 {
		return errCorruptf("control byte %#02x has invalid high nibble", ctrl)
	}

	var (
		primaryLens, secondaryLens, offsetLens []int
		err                                    error
	)
	if hi == 0 {
		nested, nerr := nestedTree()
		if nerr != nil {
			return nerr
		}
		primaryLens, err = decodeLengths(br, nested, primaryAlphabetSize)
		if err != nil {
			return err
		}
		if ctrl&8 != 0 {
			secondaryLens = append([]int(nil), primaryLens...)
		} else {
			secondaryLens, err = decodeLengths(br, nested, primaryAlphabetSize)
			if err != nil {
				return err
			}
		}
		offsetSize := int(ctrl&7) + 10
		offsetLens, err = decodeLengths(br, nested, offsetSize)
		if err != nil {
			return err
		}
	} else {
		primaryLens, secondaryLens, offsetLens, err = staticProfile(int(hi) - 1)
		if err != nil {
			return err
		}
	}

	primaryTree, err := huffman12.New(primaryLens)
	if err != nil {
		return err
	}
	secondaryTree, err := huffman12.New(secondaryLens)
	if err != nil {
		return err
	}
	offsetTree, err := huffman12.New(offsetLens)
	if err != nil {
		return err
	}

	d := &decodeState{
		window: make([]byte, WindowSize),
		out:    out,
	}
	active := primaryTree

	for d.pos < len(out) {
		if br.Eos() {
			return errCorruptf("input exhausted with %d bytes remaining", len(out)-d.pos)
		}

		sym, err := active.Decode(br)
		if err != nil {
			return err
		}

		switch {
		case sym < 0x100:
			d.writeByte(byte(sym))
			active = primaryTree

		case sym == eosSymbol:
			return errCorruptf("end-of-stream with %d bytes remaining", len(out)-d.pos)

		case sym < symMediumLen:
			length := sym - 0x100 + 3
			if err := d.copyMatch(br, offsetTree, length); err != nil {
				return err
			}
			active = secondaryTree

		case sym == symMediumLen:
			length := int(br.Take(10)) + 65
			if err := d.copyMatch(br, offsetTree, length); err != nil {
				return err
			}
			active = secondaryTree

		case sym == symLongLen:
			length := int(br.Take(15)) + 65
			if err := d.copyMatch(br, offsetTree, length); err != nil {
				return err
			}
			active = secondaryTree

		default:
			return errCorruptf("undefined primary symbol %#x", sym)
		}
	}
	return nil
}

type decodeState struct {
	window []byte
	wpos   int
	out    []byte
	pos    int
}

func (d *decodeState) writeByte(b byte) {
	d.out[d.pos] = b
	d.pos++
	d.window[d.wpos] = b
	d.wpos = (d.wpos + 1) % WindowSize
}

// copyMatch decodes an offset-prefix symbol and copies length bytes from
// the sliding window: prefix value 0 means raw_offset 0; otherwise read
// (v-1) extra bits and raw_offset = (1 << (v-1)) | extra.
// offset = raw_offset + 1.
func (d *decodeState) copyMatch(br *bitreader.Reader, offsetTree *huffman12.Table, length int) error {
	v, err := offsetTree.Decode(br)
	if err != nil {
		return err
	}

	var rawOffset int
	if v != 0 {
		extra := int(br.Take(v - 1))
		rawOffset = (1 << uint(v-1)) | extra
	}
	offset := rawOffset + 1

	if offset > WindowSize {
		return errCorruptf("back-reference offset %d exceeds window", offset)
	}

	srcPos := (d.wpos - offset + WindowSize) % WindowSize
	for i := 0; i < length; i++ {
		if d.pos >= len(d.out) {
			return errCorruptf("match overruns output buffer")
		}
		b := d.window[srcPos]
		d.writeByte(b)
		srcPos = (srcPos + 1) % WindowSize
	}
	return nil
}
