package method14

// LitLenSymbols is the size of the per-block literal/length alphabet:
// 256 literal byte values plus 52 length codes.
const LitLenSymbols = 308

// OffsetSymbols is the size of the per-block offset alphabet.
const OffsetSymbols = 75

const literalCount = 256
const lengthCodes = LitLenSymbols - literalCount // 52

// lenBase and lenExtra give, for length code c (0..51), the base length
// and extra-bit count: base[0..3] = {4,5,6,7}; extra[i] = max(0,(i-4)>>2);
// base[i] = base[i-1] + (1 << extra[i-1]) for i >= 4.
var lenBase [lengthCodes]int
var lenExtra [lengthCodes]int

// offBase and offExtra give, for offset code c (0..74), the base offset
// and extra-bit count: base[0..2] = {1,2,3}; extra[i] = max(0,(i-3)>>2);
// base[i] = base[i-1] + (1 << extra[i-1]) for i >= 3.
var offBase [OffsetSymbols]int
var offExtra [OffsetSymbols]int

func init() {
	lenBase[0], lenBase[1], lenBase[2], lenBase[3] = 4, 5, 6, 7
	for i := range lenExtra {
		if i >= 4 {
			lenExtra[i] = (i - 4) >> 2
		}
	}
	for i := 4; i < lengthCodes; i++ {
		lenBase[i] = lenBase[i-1] + (1 << uint(lenExtra[i-1]))
	}

	offBase[0], offBase[1], offBase[2] = 1, 2, 3
	for i := range offExtra {
		if i >= 3 {
			offExtra[i] = (i - 3) >> 2
		}
	}
	for i := 3; i < OffsetSymbols; i++ {
		offBase[i] = offBase[i-1] + (1 << uint(offExtra[i-1]))
	}
}
