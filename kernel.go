package main

import (
	"kernel391/hal"

	_ "unsafe" // for go:linkname
)

// KernelMain is the freestanding entry point the boot shim jumps to once
// protected mode, a stack, and the Go runtime's minimum preconditions are
// established. It stages the boot sequence spec.md 2's control-flow
// summary describes: paging -> interrupts -> PIC -> console ->
// keyboard/RTC -> scheduler/PIT -> enable interrupts -> idle, at which point the first
// three timer ticks spawn the bootstrap shells.
//
//go:nosplit
func KernelMain() {
	info := hal.ReadBootInfo()
	putHex32("mem upper kb", info.MemUpperKB)

	fsImageBase = readFSImageBase()

	pagingInit()
	putsln("paging: ok")

	interruptsInit()
	putsln("interrupts: ok")

	picInit()
	putsln("pic: ok")

	consoleInit()
	putsln("console: ok")

	keyboardInit()
	rtcInit()
	putsln("keyboard+rtc: ok")

	schedulerInit()
	putsln("scheduler: ok")

	putsln("kernel391: booting bootstrap shells")
	enableInterrupts()

	for {
		relaxCPU()
	}
}

//go:linkname readFSImageBase fs_image_base
func readFSImageBase() uint32
