package main

import (
	"kernel391/hal"

	_ "unsafe" // for go:linkname
)

// CPU exception vectors 0-16 and the 16 hardware IRQ vectors at 0x20-0x2F
// (spec.md 4.2).
const (
	excDivideError        = 0
	excDebug              = 1
	excNMI                = 2
	excBreakpoint         = 3
	excOverflow           = 4
	excBoundRange         = 5
	excInvalidOpcode      = 6
	excDeviceNotAvail     = 7
	excDoubleFault        = 8
	excCoprocOverrun      = 9
	excInvalidTSS         = 10
	excSegmentNotPresent  = 11
	excStackFault         = 12
	excGeneralProtection  = 13
	excPageFault          = 14
	excReserved15         = 15 // assertion vector: returns normally, used by tests
	excFPUError           = 16
	numExceptions         = 17
	irqBase               = 0x20
	numIRQs               = 16
)

// ExceptionInfo is the record an exception handler hands to diagnostics
// before halting, grounded on the donor's ExceptionInfo for shape (field
// names kept, contents re-derived from the x86 trap frame rather than
// ESR_EL1).
type ExceptionInfo struct {
	Vector   uint32
	ErrCode  uint32
	FaultEIP uint32
	FaultCR2 uint32 // only meaningful for excPageFault
}

// interruptsInit installs all 34 gates. Gates are written present only
// after every descriptor byte is in place (spec.md 4.2's publication
// ordering), which hal.SetGate's single atomic-looking call satisfies by
// construction: the assembly shim writes the full 8-byte descriptor before
// setting the present bit itself.
func interruptsInit() {
	for v := 0; v < numExceptions; v++ {
		hal.SetGate(uint8(v), exceptionEntry(uint8(v)), hal.GateInterrupt, 0)
	}
	for irq := 0; irq < numIRQs; irq++ {
		hal.SetGate(uint8(irqBase+irq), irqEntry(uint8(irq)), hal.GateInterrupt, 0)
	}
	// Syscall gate is DPL=3 so ring-3 user code may INT 0x80 (spec.md 4.2, 4.9).
	hal.SetGate(SyscallVector, syscallEntry(), hal.GateTrap, 3)
	hal.LoadIDT()
}

// exceptionEntry and irqEntry return the address of a per-vector assembly
// wrapper that saves caller-saved registers, clears the direction flag,
// calls back into dispatchException/dispatchIRQ, and irets (spec.md 4.2's
// "uniform wrapper" requirement) -- asm-resident, no Go body.
//
//go:linkname exceptionEntry exception_entry_addr
func exceptionEntry(vector uint8) uintptr

//go:linkname irqEntry irq_entry_addr
func irqEntry(irq uint8) uintptr

//go:linkname syscallEntry syscall_entry_addr
func syscallEntry() uintptr

// dispatchException is called by every exception wrapper. Exceptions are
// fatal by construction here (spec.md Design Notes: "must not be modeled
// with a higher-level unwinding mechanism"); the one exception is vector 15,
// reserved as a no-op assertion hook for the self-test battery.
//
//go:nosplit
func dispatchException(info ExceptionInfo) {
	if info.Vector == excReserved15 {
		return
	}
	if info.Vector == excPageFault {
		putHex32("page fault at", info.FaultCR2)
	}
	putHex32("exception vector", info.Vector)
	putHex32("fault eip", info.FaultEIP)
	abortBoot("unrecoverable CPU exception")
}

// dispatchIRQ routes a hardware interrupt to its handler and issues EOI.
// Keyboard and timer handlers run with interrupts still disabled on entry,
// matching the single-concurrency-domain model in spec.md 5.
//
//go:nosplit
func dispatchIRQ(irq uint8) {
	switch irq {
	case IRQTimer:
		pitTick()
	case IRQKeyboard:
		keyboardISR()
	case IRQRTC:
		rtcISR()
	default:
		picEOI(int(irq))
	}
}
