package main

import "kernel391/bitfield"

// Frame is the metadata kept for one 4KB physical frame in the shared pool
// paging.go allocates off-screen video buffers from. Mirrors the donor's free-list-of-Page idiom, generalized from ARM64
// granules to x86 4KB frames.
type Frame struct {
	physAddr uint32
	flags    bitfield.PTEFlags
	next     *Frame
}

var freeFrames *Frame

// framePool backs freeFrames; sized to the handful of frames this kernel
// ever needs outside the per-task 4MiB windows (the 3 off-screen video
// buffers plus headroom), since those windows are allocated whole rather
// than frame-by-frame.
var framePool [8]Frame

func framePoolInit(firstPhysAddr uint32) {
	freeFrames = nil
	for i := len(framePool) - 1; i >= 0; i-- {
		framePool[i].physAddr = firstPhysAddr + uint32(i)*PageSize4K
		framePool[i].flags = bitfield.PTEFlags{}
		framePool[i].next = freeFrames
		freeFrames = &framePool[i]
	}
}

// allocFrame removes and returns one frame from the free list, or nil if
// the pool is exhausted.
func allocFrame() *Frame {
	if freeFrames == nil {
		return nil
	}
	f := freeFrames
	freeFrames = f.next
	f.next = nil
	return f
}

func freeFrame(f *Frame) {
	f.next = freeFrames
	freeFrames = f
}

// pageTable is one 4KB, 1024-entry page table mapping a single 4MB region
// at 4KB granularity (used for the identity-mapped first 4MB and for each
// task's user-visible video window; every per-task user window and the
// kernel region are 4MB PSE pages and need no page table of their own).
type pageTable [1024]uint32

// pageDirectory is one task's (or the master's) top-level 1024-entry
// directory. Entry 0 maps the identity region via a page table; the kernel
// entry maps the kernel's own 4MB PSE page; the user entry (index
// UserWinBase>>22) maps that task's 4MB user window, present only while the
// task is alive (spec.md invariant: slot occupancy == present bit).
type pageDirectory [1024]uint32

func pdeIndex(vaddr uint32) int { return int(vaddr >> 22) }
func pteIndex(vaddr uint32) int { return int((vaddr >> 12) & 0x3FF) }

// buildPDE packs a page-directory entry pointing at phys with the given
// flags, using the reflection-tag packer bitfield already provides for PTE
// status/permission bits rather than hand-rolling bit shifts here.
func buildPDE(phys uint32, f bitfield.PDEFlags) uint32 {
	lo, err := bitfield.PackPDEFlags(f)
	if err != nil {
		abortBoot("buildPDE: " + err.Error())
	}
	return (phys &^ 0xFFF) | uint32(lo)
}

func buildPTE(phys uint32, f bitfield.PTEFlags) uint32 {
	lo, err := bitfield.PackPTEFlags(f)
	if err != nil {
		abortBoot("buildPTE: " + err.Error())
	}
	return (phys &^ 0xFFF) | uint32(lo)
}
