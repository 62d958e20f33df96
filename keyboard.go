package main

import "kernel391/hal"

const keyboardDataPort = 0x60

// Scancode-set-1 make codes for the keys the line discipline and modifier
// state machine care about (spec.md 4.8), grounded on
// original_source/.../keyboard.c's scan1_normal/scan1_special tables.
const (
	scLeftShift  = 0x2A
	scRightShift = 0x36
	scCtrl       = 0x1D
	scAlt        = 0x38
	scCapsLock   = 0x3A
	scBackspace  = 0x0E
	scEnter      = 0x1C
	scEscape     = 0x01
	scF1         = 0x3B
	scF2         = 0x3C
	scF3         = 0x3D
	scL          = 0x26

	scReleaseBit = 0x80
	scExtPrefix  = 0xE0
)

// scanNormal maps a scancode to its unshifted ASCII value; 0 marks a key
// with no direct character (handled separately as a modifier or control
// key).
var scanNormal = [128]byte{
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0A: '9', 0x0B: '0',
	0x0C: '-', 0x0D: '=',
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't',
	0x15: 'y', 0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p',
	0x1E: 'a', 0x1F: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g',
	0x23: 'h', 0x24: 'j', 0x25: 'k', 0x26: 'l',
	0x2C: 'z', 0x2D: 'x', 0x2E: 'c', 0x2F: 'v', 0x30: 'b',
	0x31: 'n', 0x32: 'm',
	0x39: ' ', scEnter: '\n', scBackspace: 0x08,
	0x1A: '[', 0x1B: ']', 0x27: ';', 0x28: '\'',
	0x33: ',', 0x34: '.', 0x35: '/',
}

// scanShifted is scanNormal's counterpart with shift (or capslock, for
// letters only) held.
var scanShifted = [128]byte{
	0x02: '!', 0x03: '@', 0x04: '#', 0x05: '$', 0x06: '%',
	0x07: '^', 0x08: '&', 0x09: '*', 0x0A: '(', 0x0B: ')',
	0x0C: '_', 0x0D: '+',
	0x10: 'Q', 0x11: 'W', 0x12: 'E', 0x13: 'R', 0x14: 'T',
	0x15: 'Y', 0x16: 'U', 0x17: 'I', 0x18: 'O', 0x19: 'P',
	0x1E: 'A', 0x1F: 'S', 0x20: 'D', 0x21: 'F', 0x22: 'G',
	0x23: 'H', 0x24: 'J', 0x25: 'K', 0x26: 'L',
	0x2C: 'Z', 0x2D: 'X', 0x2E: 'C', 0x2F: 'V', 0x30: 'B',
	0x31: 'N', 0x32: 'M',
	0x39: ' ', scEnter: '\n', scBackspace: 0x08,
	0x1A: '{', 0x1B: '}', 0x27: ':', 0x28: '"',
	0x33: '<', 0x34: '>', 0x35: '?',
}

var kbdState KeyboardState
var lastScancodeExtended bool

func isLetterCode(sc uint8) bool {
	switch sc {
	case 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18, 0x19,
		0x1E, 0x1F, 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26,
		0x2C, 0x2D, 0x2E, 0x2F, 0x30, 0x31, 0x32:
		return true
	}
	return false
}

// interpretScancode decodes one scancode-set-1 byte into an ASCII
// character (0 if none), updating the modifier record as a side effect.
// Grounded on keyboard.c's interpret_scancode.
func interpretScancode(sc uint8) byte {
	release := sc&scReleaseBit != 0
	code := sc &^ scReleaseBit

	switch code {
	case scLeftShift:
		kbdState.Shift = !release
		return 0
	case scRightShift:
		kbdState.Shift = !release
		return 0
	case scCtrl:
		kbdState.Ctrl = !release
		return 0
	case scAlt:
		kbdState.Alt = !release
		return 0
	case scCapsLock:
		if !release {
			kbdState.CapsLock = !kbdState.CapsLock
		}
		return 0
	}

	if release {
		if kbdState.LastRawKey == code {
			kbdState.LastRawKey = 0 // release clears auto-repeat suppression
		}
		return 0
	}

	if kbdState.LastRawKey == code {
		return 0 // auto-repeat suppressed until release
	}
	kbdState.LastRawKey = code

	shiftActive := kbdState.Shift
	if isLetterCode(code) && kbdState.CapsLock {
		shiftActive = !shiftActive
	}

	var ch byte
	if shiftActive {
		ch = scanShifted[code]
	} else {
		ch = scanNormal[code]
	}
	kbdState.LastDecoded = ch
	return ch
}

// keyboardISR is IRQ1's handler: decode the scancode, then either run a
// control shortcut (Ctrl+L, Alt+F1..F3), feed the line discipline, or echo
// the character to the on-screen terminal (spec.md 4.8).
//
//go:nosplit
func keyboardISR() {
	raw := hal.InByte(keyboardDataPort)

	if raw == scExtPrefix {
		lastScancodeExtended = true
		picEOI(IRQKeyboard)
		return
	}
	extended := lastScancodeExtended
	lastScancodeExtended = false

	code := raw &^ scReleaseBit
	release := raw&scReleaseBit != 0

	if !release && kbdState.Alt && !extended {
		switch code {
		case scF1:
			terminalSwitch(0)
			picEOI(IRQKeyboard)
			return
		case scF2:
			terminalSwitch(1)
			picEOI(IRQKeyboard)
			return
		case scF3:
			terminalSwitch(2)
			picEOI(IRQKeyboard)
			return
		}
	}

	if !release && kbdState.Ctrl && code == scL && !extended {
		consoleClear(onScreenIdx)
		picEOI(IRQKeyboard)
		return
	}

	ch := interpretScancode(raw)
	if ch != 0 {
		feedLineDiscipline(ch)
	}

	picEOI(IRQKeyboard)
}

// feedLineDiscipline appends ch to the on-screen terminal's pending input
// line, completing the line (and echoing the terminator) on newline or on
// buffer exhaustion at n-2 characters, per spec.md 4.8.
func feedLineDiscipline(ch byte) {
	t := &terminals[onScreenIdx]
	if t.LineReady {
		return // no readline() is currently pending
	}

	if ch == '\n' {
		t.LineBuf[t.LineLen] = '\n'
		t.LineLen++
		t.LineBuf[t.LineLen] = 0
		echo('\n')
		t.LineReady = true
		return
	}

	if ch == 0x08 {
		if t.LineLen > 0 {
			t.LineLen--
			backspace(onScreenIdx)
		}
		return
	}

	if t.LineLen >= len(t.LineBuf)-2 {
		t.LineBuf[t.LineLen] = '\n'
		t.LineLen++
		t.LineBuf[t.LineLen] = 0
		echo('\n')
		t.LineReady = true
		return
	}

	t.LineBuf[t.LineLen] = ch
	t.LineLen++
	echo(ch)
}

func keyboardInit() {
	kbdState = KeyboardState{}
	picEnable(IRQKeyboard)
}
