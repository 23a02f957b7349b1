package method13

import (
	"github.com/gostuffit/stuffit/internal/bitreader"
	"github.com/gostuffit/stuffit/internal/huffman12"
)

// nestedTree decodes the fixed 37-symbol codelength alphabet used to
// transmit a dynamic-mode Huffman tree.
func nestedTree() (*huffman12.Table, error) {
	return huffman12.New(infoLengths[:])
}

// decodeLengths reads n codelengths from br using the 37-symbol nested
// alphabet tree. Each decoded symbol either sets-and-emits a length, or
// repeats the last-emitted length some number of additional times:
//
//	s in 0..30  -> current length = s; emit once
//	s == 31     -> current length = -1 ("absent"); emit 0 once
//	s == 32     -> current length++; emit once
//	s == 33     -> current length--; emit once
//	s == 34     -> read one more bit; only if it is 1, emit current length once more
//	s == 35     -> emit current length (2 + next 3 bits) more times
//	s == 36     -> emit current length (10 + next 6 bits) more times
func decodeLengths(br *bitreader.Reader, tree *huffman12.Table, n int) ([]int, error) {
	out := make([]int, n)
	curLen := -1
	pos := 0
	for pos < n {
		s, err := tree.Decode(br)
		if err != nil {
			return nil, err
		}
		if br.Eos() {
			return nil, errCorruptf("nested tree exhausted input")
		}
		switch {
		case s <= 30:
			curLen = s
			out[pos] = curLen
			pos++
		case s == 31:
			curLen = -1
			out[pos] = 0
			pos++
		case s == 32:
			curLen++
			out[pos] = curLen
			pos++
		case s == 33:
			curLen--
			out[pos] = curLen
			pos++
		case s == 34:
			if br.Take1() == 1 {
				out[pos] = clampLen(curLen)
				pos++
			}
		case s == 35:
			repeat := 2 + int(br.Take(3))
			for rep := 0; rep < repeat; rep++ {
				if pos >= n {
					break
				}
				out[pos] = clampLen(curLen)
				pos++
			}
		case s == 36:
			repeat := 10 + int(br.Take(6))
			for rep := 0; rep < repeat; rep++ {
				if pos >= n {
					break
				}
				out[pos] = clampLen(curLen)
				pos++
			}
		default:
			return nil, errCorruptf("undefined nested tree symbol %d", s)
		}
	}
	return out, nil
}

func clampLen(l int) int {
	if l < 0 {
		return 0
	}
	return l
}
