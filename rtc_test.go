package main

import "testing"

func TestDivisorToRate(t *testing.T) {
	tests := []struct {
		freq    uint32
		want    uint8
		wantErr bool
	}{
		{2, 15, false},
		{8, 13, false},
		{1024, 6, false},
		{8192, 3, false},
		{0, 0, true},
		{3, 0, true},    // not a power of two
		{16384, 0, true}, // faster than register A supports
	}

	for _, tt := range tests {
		got, err := divisorToRate(tt.freq)
		if (err != nil) != tt.wantErr {
			t.Errorf("divisorToRate(%d) error = %v, wantErr %v", tt.freq, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("divisorToRate(%d) = %d, want %d", tt.freq, got, tt.want)
		}
	}
}

// fakeRTCRegA simulates register A behind rtcOutByte/rtcInByte: a select
// write latches the addressed register, a following data read/write
// operates on it.
type fakeRTCRegA struct {
	value    uint8
	selected uint8
}

func (f *fakeRTCRegA) out(port uint16, val uint8) {
	if port == rtcIndexPort {
		f.selected = val &^ 0x80
		return
	}
	if f.selected == rtcRegA {
		f.value = val
	}
}

func (f *fakeRTCRegA) in(port uint16) uint8 {
	if f.selected == rtcRegA {
		return f.value
	}
	return 0
}

// TestOpenResetsToDefaultRate covers the reported bug: opening /dev/rtc
// must reprogram register A to the 2 Hz default regardless of whatever
// rate a previous opener last wrote via Write, rather than inheriting it.
func TestOpenResetsToDefaultRate(t *testing.T) {
	origOut, origIn := rtcOutByte, rtcInByte
	defer func() { rtcOutByte, rtcInByte = origOut, origIn }()

	fake := &fakeRTCRegA{}
	rtcOutByte, rtcInByte = fake.out, fake.in

	wantRateAt2Hz, _ := divisorToRate(2)

	dev := RTCDevice{}

	if _, err := dev.Write(nil, []byte{64, 0, 0, 0}); err != nil {
		t.Fatalf("Write(64Hz) error = %v", err)
	}
	if fake.value&0x0F == wantRateAt2Hz {
		t.Fatalf("fixture broken: register A already at the 2Hz rate before Open")
	}

	if err := dev.Open("rtc"); err != nil {
		t.Fatalf("Open error = %v", err)
	}
	if got := fake.value & 0x0F; got != wantRateAt2Hz {
		t.Errorf("register A rate after Open = %d, want %d (2Hz default)", got, wantRateAt2Hz)
	}

	// Re-open after a second, different Write: must reset again.
	if _, err := dev.Write(nil, []byte{128, 0, 0, 0}); err != nil {
		t.Fatalf("Write(128Hz) error = %v", err)
	}
	if err := dev.Open("rtc"); err != nil {
		t.Fatalf("second Open error = %v", err)
	}
	if got := fake.value & 0x0F; got != wantRateAt2Hz {
		t.Errorf("register A rate after second Open = %d, want %d (2Hz default)", got, wantRateAt2Hz)
	}
}
