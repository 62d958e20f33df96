package hal

import _ "unsafe" // for go:linkname

// GateType selects the kind of IDT gate an entry describes.
type GateType uint8

const (
	// GateInterrupt clears IF on entry; used for exceptions and hardware IRQs.
	GateInterrupt GateType = 0x0E
	// GateTrap leaves IF alone; used for the syscall vector.
	GateTrap GateType = 0x0F
)

// SetGate installs handler at the given IDT vector with the requested gate
// type and descriptor privilege level (0 for kernel-only, 3 to allow INT 0x80
// from Ring 3). handler is the address of a bare assembly wrapper that saves
// registers and calls back into Go.
//
//go:linkname SetGate idt_set_gate
func SetGate(vector uint8, handler uintptr, kind GateType, dpl uint8)

// LoadIDT flushes the IDTR to point at the table SetGate has been filling in.
//
//go:linkname LoadIDT idt_load
func LoadIDT()
