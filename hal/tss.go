package hal

import _ "unsafe" // for go:linkname

// SetKernelStack updates the TSS esp0 field so the next Ring3->Ring0
// transition (syscall trap, IRQ while in user mode) lands on the given
// kernel stack. The scheduler calls this on every context switch so each
// task's interrupts land in its own PCB-resident stack.
//
//go:linkname SetKernelStack tss_set_esp0
func SetKernelStack(esp0 uint32)
