package crc16

import "testing"

func TestChecksumEmpty(t *testing.T) {
	if got := Checksum(nil); got != 0 {
		t.Fatalf("got %#x, want 0", got)
	}
}

func TestChecksumKnownVector(t *testing.T) {
	// "123456789" is the standard check value for CRC-16/ARC (poly
	// 0x8005, reflected 0xa001, init 0, no final XOR) -- the variant
	// this package implements.
	got := Checksum([]byte("123456789"))
	const want = 0xbb3d
	if got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}

func TestUpdateIsIncremental(t *testing.T) {
	whole := Checksum([]byte("hello world"))
	piecewise := Update(Update(0, []byte("hello ")), []byte("world"))
	if whole != piecewise {
		t.Fatalf("got %#x, want %#x", piecewise, whole)
	}
}

func TestVerifyWithField(t *testing.T) {
	buf := make([]byte, 12)
	copy(buf, "header data!")
	crc := Checksum(append(append([]byte{}, buf[:10]...), 0, 0))
	buf[10] = byte(crc >> 8)
	buf[11] = byte(crc)

	if !VerifyWithField(buf, 10) {
		t.Fatal("expected CRC to verify")
	}
	buf[5] ^= 0xff
	if VerifyWithField(buf, 10) {
		t.Fatal("expected corrupted buffer to fail CRC")
	}
}
