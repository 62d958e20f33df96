package bitfield

import (
	"testing"
	"unsafe"
)

func TestPTEFlagsHasNonZeroSize(t *testing.T) {
	var flags PTEFlags
	size := unsafe.Sizeof(flags)

	t.Logf("PTEFlags struct size: %d bytes (%d bits)", size, size*8)

	if size == 0 {
		t.Errorf("PTEFlags has zero size")
	}
}

func TestPackedPTEFitsTwelveBits(t *testing.T) {
	flags := PTEFlags{Present: true, Writable: true, Global: true, Avail: 0x7}

	packed, err := PackPTEFlags(flags)
	if err != nil {
		t.Fatalf("PackPTEFlags error: %v", err)
	}

	t.Logf("Packed PTE flags: 0x%03x", packed)

	if packed>>12 != 0 {
		t.Errorf("Packed value exceeds 12 bits! Upper bits: 0x%x", packed>>12)
	}
}

func TestUnpackPTEConsistentAcrossWidths(t *testing.T) {
	const testValue = uint64(0x1FF)

	a, err := UnpackPTEFlags(testValue)
	if err != nil {
		t.Fatalf("UnpackPTEFlags error: %v", err)
	}
	b, err := UnpackPTEFlags(uint64(uint32(testValue)))
	if err != nil {
		t.Fatalf("UnpackPTEFlags error: %v", err)
	}

	if a != b {
		t.Errorf("unpacking differs between widths: %+v != %+v", a, b)
	}
}
