package main

import (
	"kernel391/hal"

	_ "unsafe" // for go:linkname
)

// Boot-time diagnostics. Modeled on the donor's uartPutsBytes/hex-printing
// helpers (kernel.go): no fmt here, since this runs before the heap and
// scheduler exist and fmt's reflection path is not safe to call yet.

func putsln(s string) {
	hal.UARTPutsBytes([]byte(s))
	hal.UARTPutsBytes([]byte{'\n'})
}

var hexDigits = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

func putHex32(label string, v uint32) {
	var buf [10]byte
	buf[0] = '0'
	buf[1] = 'x'
	for i := 0; i < 8; i++ {
		shift := uint(28 - i*4)
		buf[2+i] = hexDigits[(v>>shift)&0xF]
	}
	hal.UARTPutsBytes([]byte(label))
	hal.UARTPutsBytes([]byte(": "))
	hal.UARTPutsBytes(buf[:])
	hal.UARTPutsBytes([]byte{'\n'})
}

// abortBoot halts the CPU after printing a final diagnostic. Used only for
// conditions that are fatal by construction (PSE unsupported, a CPU
// exception raised from kernel code) — never for a recoverable error, which
// instead flows back as a Go error.
func abortBoot(reason string) {
	putsln("FATAL: " + reason)
	for {
		halt_cpu()
	}
}

//go:linkname halt_cpu halt_cpu
//go:nosplit
func halt_cpu()
