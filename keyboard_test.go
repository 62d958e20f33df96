package main

import "testing"

func resetKeyboard() {
	kbdState = KeyboardState{}
	lastScancodeExtended = false
}

func TestInterpretScancodeLowercase(t *testing.T) {
	resetKeyboard()
	if ch := interpretScancode(0x1E); ch != 'a' {
		t.Errorf("interpretScancode(0x1E) = %q, want 'a'", ch)
	}
}

func TestInterpretScancodeShift(t *testing.T) {
	resetKeyboard()
	interpretScancode(scLeftShift)
	if !kbdState.Shift {
		t.Fatalf("left shift press did not set Shift")
	}
	if ch := interpretScancode(0x1E); ch != 'A' {
		t.Errorf("shifted 'a' key = %q, want 'A'", ch)
	}
	interpretScancode(scLeftShift | scReleaseBit)
	if kbdState.Shift {
		t.Fatalf("left shift release did not clear Shift")
	}
}

func TestInterpretScancodeCapsLockTogglesLettersOnly(t *testing.T) {
	resetKeyboard()
	interpretScancode(scCapsLock)
	if !kbdState.CapsLock {
		t.Fatalf("capslock press did not toggle state")
	}
	if ch := interpretScancode(0x1E); ch != 'A' {
		t.Errorf("capslock 'a' key = %q, want 'A'", ch)
	}
	resetKeyboard()
	interpretScancode(scCapsLock)
	if ch := interpretScancode(0x0B); ch != '0' {
		t.Errorf("capslock should not affect digit row: got %q, want '0'", ch)
	}
}

func TestInterpretScancodeAutoRepeatSuppressed(t *testing.T) {
	resetKeyboard()
	first := interpretScancode(0x1E)
	second := interpretScancode(0x1E) // held key re-sends the same make code
	if first != 'a' {
		t.Fatalf("first press = %q, want 'a'", first)
	}
	if second != 0 {
		t.Errorf("auto-repeated make code returned %q, want 0 (suppressed)", second)
	}
	interpretScancode(0x1E | scReleaseBit)
	third := interpretScancode(0x1E)
	if third != 'a' {
		t.Errorf("press after release returned %q, want 'a'", third)
	}
}

func TestFeedLineDisciplineNewlineTerminatesBuffer(t *testing.T) {
	resetQueue()
	terminals[0] = VirtualTerminal{Present: true, ID: 0, OnScreen: true}
	terminals[0].State.EchoEnabled = true
	terminals[0].State.AutoIncrement = true
	onScreenIdx = 0

	for _, ch := range []byte("hello") {
		feedLineDiscipline(ch)
	}
	feedLineDiscipline('\n')

	if !terminals[0].LineReady {
		t.Fatalf("LineReady not set after newline")
	}
	got := string(terminals[0].LineBuf[:terminals[0].LineLen+1])
	want := "hello\n\x00"
	if got != want {
		t.Errorf("line buffer = %q, want %q", got, want)
	}
}
