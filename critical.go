package main

import _ "unsafe" // for go:linkname

// withInterruptsDisabled runs fn inside a cli/sti bracket, the critical-
// section idiom spec.md 4.8 and 5 require around video-memory and
// task-queue mutations ("guarded by disabling interrupts around queue
// mutations"). Interrupts are not nestable here (single CPU, no recursive
// disable count), matching the donor's own non-reentrant critical sections.
func withInterruptsDisabled(fn func()) {
	disableInterrupts()
	fn()
	enableInterrupts()
}

//go:linkname disableInterrupts cli
//go:nosplit
func disableInterrupts()

// relaxCPU executes a single `pause`/`hlt`-class instruction while spinning
// on a condition variable set by an interrupt handler (readline's and
// rtc_read's busy-wait loops, spec.md 5).
//
//go:linkname relaxCPU relax_cpu
//go:nosplit
func relaxCPU()
