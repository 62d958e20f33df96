// Package hal holds the minimal external contracts the kernel core is built
// on: port I/O, the GDT/TSS field the scheduler touches, the raw interrupt
// descriptor table, and the iret trampoline that hands control to user mode.
// None of it is implemented here. Every function is a linknamed reference to
// the platform's boot/assembly shim (io.S, idt.S, contextswitch.S); the core
// depends only on these signatures.
package hal

import _ "unsafe" // for go:linkname

// InByte reads a single byte from the given I/O port.
//
//go:linkname InByte in_byte
//go:nosplit
func InByte(port uint16) uint8

// OutByte writes a single byte to the given I/O port.
//
//go:linkname OutByte out_byte
//go:nosplit
func OutByte(port uint16, val uint8)

// IOWait burns a handful of cycles so back-to-back port writes land after the
// slow legacy hardware (8259, 8253, keyboard controller) has caught up.
//
//go:linkname IOWait io_wait
//go:nosplit
func IOWait()
