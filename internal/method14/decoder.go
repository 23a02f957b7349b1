// Package method14 implements the StuffIt "Installer" decompressor
// (compression method 14): a block-structured LZ decoder over a 256 KiB
// sliding window, with two canonical-Huffman trees rebuilt per block from
// a compact nested codelength encoding.
//
// Both trees decode symbols through the same direct 12-bit table with
// overflow-tree fallback that internal/huffman12 builds for method 13's
// trees, so the canonical-Huffman construction isn't duplicated here.
package method14

import (
	"github.com/gostuffit/stuffit/internal/bitreader"
)

// WindowSize is the fixed LZ back-reference window for method 14.
const WindowSize = 1 << 18

// Decode reads a method-14 stream from br and writes exactly len(out)
// decompressed bytes into out, or returns an error. out must be
// pre-sized to the fork's uncompressed_size.
func Decode(br *bitreader.Reader, out []byte) error {
	blockCount := int(br.Take(16))

	window := make([]byte, WindowSize)
	wpos := 0
	pos := 0

	for b := 0; b < blockCount; b++ {
		take32(br) // crunched block size, not relied upon

		blockLen := int(take32(br))
		if pos+blockLen > len(out) {
			return errCorruptf("block %d overruns output buffer", b)
		}

		litTree, err := readTree(br, LitLenSymbols, 0)
		if err != nil {
			return err
		}
		offTree, err := readTree(br, OffsetSymbols, 0)
		if err != nil {
			return err
		}

		// A zero-length block still consumes its tree headers and still
		// realigns to a byte boundary below; only the copy loop itself is
		// skipped, since end equals pos already.
		end := pos + blockLen
		for pos < end {
			if br.Eos() {
				return errCorruptf("input exhausted mid-block with %d bytes remaining", end-pos)
			}

			s, err := litTree.Decode(br)
			if err != nil {
				return err
			}

			if s < literalCount {
				out[pos] = byte(s)
				window[wpos] = byte(s)
				wpos = (wpos + 1) % WindowSize
				pos++
				continue
			}

			c := s - literalCount
			if c >= lengthCodes {
				return errCorruptf("undefined length code %d", s)
			}
			length := lenBase[c]
			if lenExtra[c] > 0 {
				length += int(br.Take(lenExtra[c]))
			}

			oc, err := offTree.Decode(br)
			if err != nil {
				return err
			}
			if oc >= OffsetSymbols {
				return errCorruptf("undefined offset code %d", oc)
			}
			offset := offBase[oc]
			if offExtra[oc] > 0 {
				offset += int(br.Take(offExtra[oc]))
			}
			if offset > WindowSize {
				return errCorruptf("back-reference offset %d exceeds window", offset)
			}

			srcPos := (wpos - offset + WindowSize) % WindowSize
			for i := 0; i < length; i++ {
				if pos >= end {
					return errCorruptf("match overruns block boundary")
				}
				v := window[srcPos]
				out[pos] = v
				window[wpos] = v
				wpos = (wpos + 1) % WindowSize
				pos++
				srcPos = (srcPos + 1) % WindowSize
			}
		}

		br.AlignToByte()
	}

	if pos != len(out) {
		return errCorruptf("produced %d bytes, wanted %d", pos, len(out))
	}
	return nil
}

func take32(br *bitreader.Reader) uint32 {
	lo := br.Take(16)
	hi := br.Take(16)
	return uint32(hi)<<16 | uint32(lo)
}
