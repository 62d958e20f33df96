package bitfield

import (
	"fmt"
	"testing"
)

func TestPackPTEFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    PTEFlags
		expected uint64
	}{
		{
			name:     "all flags false",
			flags:    PTEFlags{},
			expected: 0x000,
		},
		{
			name:     "present only",
			flags:    PTEFlags{Present: true},
			expected: 0x001,
		},
		{
			name:     "present, writable, user",
			flags:    PTEFlags{Present: true, Writable: true, User: true},
			expected: 0x007,
		},
		{
			name:     "accessed and dirty",
			flags:    PTEFlags{Present: true, Accessed: true, Dirty: true},
			expected: 0x061,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := PackPTEFlags(tt.flags)
			if err != nil {
				t.Fatalf("PackPTEFlags() error = %v", err)
			}
			if packed != tt.expected {
				t.Errorf("PackPTEFlags() = 0x%03x, want 0x%03x", packed, tt.expected)
			}
		})
	}
}

func TestUnpackPTEFlags(t *testing.T) {
	got, err := UnpackPTEFlags(0x007)
	if err != nil {
		t.Fatalf("UnpackPTEFlags() error = %v", err)
	}
	if !got.Present || !got.Writable || !got.User {
		t.Errorf("UnpackPTEFlags(0x007) = %+v, want Present/Writable/User set", got)
	}
	if got.Accessed || got.Dirty {
		t.Errorf("UnpackPTEFlags(0x007) = %+v, want Accessed/Dirty clear", got)
	}
}

func TestPTEFlagsRoundTrip(t *testing.T) {
	cases := []PTEFlags{
		{},
		{Present: true},
		{Present: true, Writable: true, User: true, Global: true},
		{Present: true, WriteThrough: true, CacheDisable: true, PAT: true},
	}

	for i, original := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			packed, err := PackPTEFlags(original)
			if err != nil {
				t.Fatalf("PackPTEFlags() error = %v", err)
			}
			unpacked, err := UnpackPTEFlags(packed)
			if err != nil {
				t.Fatalf("UnpackPTEFlags() error = %v", err)
			}
			if unpacked != original {
				t.Errorf("round trip: got %+v, want %+v", unpacked, original)
			}
		})
	}
}

func TestPDEFlagsPageSizeBit(t *testing.T) {
	packed, err := PackPDEFlags(PDEFlags{Present: true, Writable: true, PageSize: true})
	if err != nil {
		t.Fatalf("PackPDEFlags() error = %v", err)
	}
	if packed&0x080 == 0 {
		t.Errorf("PackPDEFlags() = 0x%03x, want PageSize bit (0x080) set", packed)
	}
}

func TestCellAttrRoundTrip(t *testing.T) {
	original := CellAttr{Foreground: 0xF, Background: 0x1, Blink: true}
	packed, err := PackCellAttr(original)
	if err != nil {
		t.Fatalf("PackCellAttr() error = %v", err)
	}
	if packed != 0xFF {
		t.Errorf("PackCellAttr() = 0x%02x, want 0xff", packed)
	}
	unpacked, err := UnpackCellAttr(packed)
	if err != nil {
		t.Fatalf("UnpackCellAttr() error = %v", err)
	}
	if unpacked != original {
		t.Errorf("UnpackCellAttr() = %+v, want %+v", unpacked, original)
	}
}

func TestFDFlagsInUse(t *testing.T) {
	packed, err := PackFDFlags(FDFlags{InUse: true})
	if err != nil {
		t.Fatalf("PackFDFlags() error = %v", err)
	}
	if packed != 1 {
		t.Errorf("PackFDFlags(InUse) = 0x%x, want 1", packed)
	}
	unpacked, err := UnpackFDFlags(0)
	if err != nil {
		t.Fatalf("UnpackFDFlags() error = %v", err)
	}
	if unpacked.InUse {
		t.Errorf("UnpackFDFlags(0).InUse = true, want false")
	}
}

func ExamplePackPTEFlags() {
	flags := PTEFlags{Present: true, Writable: true, User: true}

	packed, err := PackPTEFlags(flags)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Packed flags: 0x%03x\n", packed)

	unpacked, _ := UnpackPTEFlags(packed)
	fmt.Printf("Unpacked - Present: %v, Writable: %v, User: %v\n",
		unpacked.Present, unpacked.Writable, unpacked.User)

	// Output:
	// Packed flags: 0x007
	// Unpacked - Present: true, Writable: true, User: true
}
