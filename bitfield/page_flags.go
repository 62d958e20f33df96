package bitfield

// PTEFlags mirrors the low 12 status/permission bits of an x86 page table
// entry. The upper 20 bits (the frame address) are packed separately by the
// paging manager, which already has the frame aligned to 4KB.
type PTEFlags struct {
	Present      bool   `bitfield:",1"`
	Writable     bool   `bitfield:",1"`
	User         bool   `bitfield:",1"`
	WriteThrough bool   `bitfield:",1"`
	CacheDisable bool   `bitfield:",1"`
	Accessed     bool   `bitfield:",1"`
	Dirty        bool   `bitfield:",1"`
	PAT          bool   `bitfield:",1"`
	Global       bool   `bitfield:",1"`
	Avail        uint32 `bitfield:",3"`
}

// PDEFlags mirrors the low 12 bits of a page directory entry. PageSize
// selects between a 4KB entry (pointing at a page table) and a 4MB entry
// (PSE, mapping memory directly) such as the kernel's own 4MB identity page.
type PDEFlags struct {
	Present      bool   `bitfield:",1"`
	Writable     bool   `bitfield:",1"`
	User         bool   `bitfield:",1"`
	WriteThrough bool   `bitfield:",1"`
	CacheDisable bool   `bitfield:",1"`
	Accessed     bool   `bitfield:",1"`
	Reserved     bool   `bitfield:",1"`
	PageSize     bool   `bitfield:",1"`
	Global       bool   `bitfield:",1"`
	Avail        uint32 `bitfield:",3"`
}

// CellAttr is the attribute byte of a VGA text-mode cell, packed alongside
// the character byte into the 16-bit word the CRTC scans out of video RAM.
type CellAttr struct {
	Foreground uint32 `bitfield:",4"`
	Background uint32 `bitfield:",3"`
	Blink      bool   `bitfield:",1"`
}

// KbdModifiers is a packed layout for the keyboard's shift/lock key state.
// The keyboard driver keeps its live modifier record in its own
// KeyboardState type and does not use this one.
type KbdModifiers struct {
	LeftShift  bool `bitfield:",1"`
	RightShift bool `bitfield:",1"`
	Ctrl       bool `bitfield:",1"`
	Alt        bool `bitfield:",1"`
	CapsLock   bool `bitfield:",1"`
}

// FDFlags is the flag word stored alongside each process's file descriptor.
type FDFlags struct {
	InUse bool   `bitfield:",1"`
	Pad   uint32 `bitfield:",31"`
}

// PackPTEFlags packs a PTEFlags struct into the low bits of a page table entry.
func PackPTEFlags(f PTEFlags) (uint64, error) {
	return Pack(&f, &Config{NumBits: 12})
}

// UnpackPTEFlags reverses PackPTEFlags.
func UnpackPTEFlags(raw uint64) (PTEFlags, error) {
	var f PTEFlags
	err := Unpack(raw, &f, &Config{NumBits: 12})
	return f, err
}

// PackPDEFlags packs a PDEFlags struct into the low bits of a page directory entry.
func PackPDEFlags(f PDEFlags) (uint64, error) {
	return Pack(&f, &Config{NumBits: 12})
}

// UnpackPDEFlags reverses PackPDEFlags.
func UnpackPDEFlags(raw uint64) (PDEFlags, error) {
	var f PDEFlags
	err := Unpack(raw, &f, &Config{NumBits: 12})
	return f, err
}

// PackCellAttr packs a CellAttr into the attribute byte of a text-mode cell.
func PackCellAttr(a CellAttr) (uint64, error) {
	return Pack(&a, &Config{NumBits: 8})
}

// UnpackCellAttr reverses PackCellAttr.
func UnpackCellAttr(raw uint64) (CellAttr, error) {
	var a CellAttr
	err := Unpack(raw, &a, &Config{NumBits: 8})
	return a, err
}

// PackFDFlags packs an FDFlags into a 32-bit word.
func PackFDFlags(f FDFlags) (uint64, error) {
	return Pack(&f, &Config{NumBits: 32})
}

// UnpackFDFlags reverses PackFDFlags.
func UnpackFDFlags(raw uint64) (FDFlags, error) {
	var f FDFlags
	err := Unpack(raw, &f, &Config{NumBits: 32})
	return f, err
}
