package main

import (
	"kernel391/hal"

	_ "unsafe" // for go:linkname
)

// Cursor type selects the CRTC scanline start/end pair that gives the
// hardware cursor its shape (spec.md 4.8).
type CursorType int

const (
	CursorUnderline CursorType = iota
	CursorHalfBlock
	CursorBlock
)

const (
	crtcCursorStartReg = 0x0A
	crtcCursorEndReg   = 0x0B
	csrDisableBit      = 0x20 // cursor-start register bit 5: set disables the cursor
)

func crtcWrite(index uint8, value uint8) {
	hal.OutByte(CRTCIndexPort, index)
	hal.OutByte(CRTCDataPort, value)
}

func crtcRead(index uint8) uint8 {
	hal.OutByte(CRTCIndexPort, index)
	return hal.InByte(CRTCDataPort)
}

// vgaSetCursorPos programs CRTC registers 0x0E/0x0F with the linear cell
// index row*ScreenCols+col (spec.md 4.8).
func vgaSetCursorPos(row, col int) {
	pos := uint16(row*ScreenCols + col)
	crtcWrite(CRTCCursorHi, uint8(pos>>8))
	crtcWrite(CRTCCursorLo, uint8(pos&0xFF))
}

// vgaSetCursorType selects the scanline range the given cursor shape uses.
func vgaSetCursorType(t CursorType) {
	var start, end uint8
	switch t {
	case CursorUnderline:
		start, end = 14, 15
	case CursorHalfBlock:
		start, end = 8, 15
	case CursorBlock:
		start, end = 0, 15
	}
	cur := crtcRead(crtcCursorStartReg)
	crtcWrite(crtcCursorStartReg, (cur&csrDisableBit)|start)
	crtcWrite(crtcCursorEndReg, end)
}

// vgaEnableCursor toggles CSR bit 5, which blanks the cursor glyph without
// touching its shape or position.
func vgaEnableCursor(enabled bool) {
	cur := crtcRead(crtcCursorStartReg)
	if enabled {
		crtcWrite(crtcCursorStartReg, cur&^csrDisableBit)
	} else {
		crtcWrite(crtcCursorStartReg, cur|csrDisableBit)
	}
}

//go:linkname videoMemWriteCell video_mem_write_cell
//go:nosplit
func videoMemWriteCell(index int, cell uint16)

//go:linkname videoMemReadCell video_mem_read_cell
//go:nosplit
func videoMemReadCell(index int) uint16
