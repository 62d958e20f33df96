package hal

import _ "unsafe" // for go:linkname

// LoadCR3 points the MMU at a new page directory's physical address.
//
//go:linkname LoadCR3 cr3_load
//go:nosplit
func LoadCR3(pageDirPhys uint32)

// EnablePSE sets CR4.PSE so the page directory can mix 4MB and 4KB mappings.
//
//go:linkname EnablePSE cr4_enable_pse
//go:nosplit
func EnablePSE()

// EnablePaging sets CR0.PG (and PE, already set by the boot shim) to turn on
// translation. Must run after the first CR3 load.
//
//go:linkname EnablePaging cr0_enable_paging
//go:nosplit
func EnablePaging()

// FaultAddr reads CR2, the linear address that caused the most recent page
// fault. Valid only inside a page-fault handler.
//
//go:linkname FaultAddr cr2_read
//go:nosplit
func FaultAddr() uint32
