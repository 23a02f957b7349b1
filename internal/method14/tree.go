package method14

import (
	"github.com/gostuffit/stuffit/internal/bitreader"
	"github.com/gostuffit/stuffit/internal/huffman12"
)

// maxNestDepth bounds the one level of recursion the nested-tree encoding
// uses (a sub-tree is itself always read with the flat, non-nested
// encoding -- nothing in this format nests more than once).
const maxNestDepth = 1

// readTree reads one per-block Huffman tree for alphabetSize symbols,
// using the compact nested codelength encoding: a 1-bit k_flag, a 2-bit
// bucket-size selector j (bucket size = 1<<(j+2), m = size-1), a 3-bit
// offset bias o (bias = o+1), and a 2-bit field whose low bit selects
// between a recursively-coded 32-symbol codelength tree ("use-nested")
// and flat j-bit codelength fields.
func readTree(br *bitreader.Reader, alphabetSize, depth int) (*huffman12.Table, error) {
	lengths, err := readLengths(br, alphabetSize, depth)
	if err != nil {
		return nil, err
	}
	return huffman12.New(lengths)
}

func readLengths(br *bitreader.Reader, alphabetSize, depth int) ([]int, error) {
	kFlag := br.Take1()
	j := int(br.Take(2))
	size := 1 << uint(j+2)
	m := size - 1
	o := int(br.Take(3)) + 1
	sel := br.Take(2)
	useNested := sel&1 == 1

	repeatMarker := m
	if kFlag == 1 {
		repeatMarker = m - 1
	}

	var subTree *huffman12.Table
	if useNested && depth < maxNestDepth {
		t, err := readTree(br, 32, depth+1)
		if err != nil {
			return nil, err
		}
		subTree = t
	}

	lengths := make([]int, alphabetSize)
	pos := 0
	for pos < alphabetSize {
		var v int
		if subTree != nil {
			sym, err := subTree.Decode(br)
			if err != nil {
				return nil, err
			}
			v = sym
		} else {
			v = int(br.Take(j))
		}

		switch {
		case v == 0:
			lengths[pos] = 0
			pos++
		case v == repeatMarker:
			repeat := int(br.Take(j)) + 3
			prev := 0
			if pos > 0 {
				prev = lengths[pos-1]
			}
			for i := 0; i < repeat && pos < alphabetSize; i++ {
				lengths[pos] = prev
				pos++
			}
		default:
			lengths[pos] = v + o
			pos++
		}

		if br.Eos() {
			return nil, errCorruptf("codelength stream exhausted before %d symbols", alphabetSize)
		}
	}
	return lengths, nil
}
