package main

import (
	"kernel391/bitfield"
	"kernel391/hal"

	_ "unsafe" // for go:linkname
)

// Per-task page directories, pre-allocated for the lifetime of the kernel
// (spec.md 4.1: "build a pool of N per-task page directories with kernel
// entries pre-populated"). Index i backs task slot i 1:1.
var taskDirs [MaxTasks]pageDirectory

// masterDir is installed before any task exists and is never itself
// scheduled; every taskDirs[i] is initialized as a copy of its kernel
// entries.
var masterDir pageDirectory

// identityTable backs PDE 0 of every directory: a 4KB-granularity mapping
// of the first 4MB with page 0 absent (null-deref guard) and the VGA text
// page present at its physical location.
var identityTable pageTable

// userVideoTables holds, per task, the 4KB page table backing that task's
// user-visible video window (spec.md 4.1's vidmap); installed lazily on
// first use since most tasks never call vidmap.
var userVideoTables [MaxTasks]pageTable
var userVideoTableInstalled [MaxTasks]bool

var videoBackingFrames [NumTerminals]uint32 // off-screen video physical frames, allocated lazily

//go:linkname addrOfDir addr_of_dir
func addrOfDir(p *pageDirectory) uint32

//go:linkname addrOfTable addr_of_table
func addrOfTable(p *pageTable) uint32

// pagingInit programs PSE, builds the master directory and the per-task
// pool, loads CR3 and turns paging on. Grounded on
// original_source/.../paging.c's init_paging.
func pagingInit() {
	hal.EnablePSE()

	for i := range identityTable {
		identityTable[i] = 0 // present=0: page 0 traps null-deref; only the VGA page is filled in below
	}
	for i := 1; i < 1024; i++ {
		phys := uint32(i) * PageSize4K
		if phys == VideoPhysAddr {
			identityTable[i] = buildPTE(phys, bitfield.PTEFlags{Present: true, Writable: true})
		}
	}

	masterDir[0] = buildPDE(addrOfTable(&identityTable), bitfield.PDEFlags{Present: true, Writable: true})
	masterDir[pdeIndex(KernelEnd)] = buildPDE(KernelEnd, bitfield.PDEFlags{Present: true, Writable: true, PageSize: true})

	for i := range taskDirs {
		taskDirs[i] = masterDir
		// User PDE starts absent; newProcessTable flips it on allocation.
		taskDirs[i][pdeIndex(UserWinBase)] = 0
	}

	framePoolInit(KernelEnd + uint32(MaxTasks+1)*PageSize4M)

	hal.LoadCR3(addrOfDir(&masterDir))
	hal.EnablePaging()
}

// newProcessTable finds the first task slot whose user PDE is not present,
// marks it present and switches CR3 to it. Grounded on paging.c's
// new_process_ptable.
func newProcessTable() (int32, error) {
	for i := 0; i < MaxTasks; i++ {
		pde := taskDirs[i][pdeIndex(UserWinBase)]
		if pde&1 == 0 { // present bit clear
			userPhys := KernelEnd + uint32(i+1)*PageSize4M
			taskDirs[i][pdeIndex(UserWinBase)] = buildPDE(userPhys, bitfield.PDEFlags{
				Present: true, Writable: true, User: true, PageSize: true,
			})
			hal.LoadCR3(addrOfDir(&taskDirs[i]))
			return int32(i), nil
		}
	}
	return -1, ErrNoFreeSlot
}

// returnToParent loads the parent's directory and clears the child slot's
// user PDE present bit, per paging.c's return_parent_paging.
func returnToParent(currentPid, parentPid int32) {
	taskDirs[currentPid][pdeIndex(UserWinBase)] &^= 1
	hal.LoadCR3(addrOfDir(&taskDirs[parentPid]))
}

// switchTo loads pid's directory without touching its present bit: the
// scheduler path, where the target task is already known-live.
func switchTo(pid int32) {
	hal.LoadCR3(addrOfDir(&taskDirs[pid]))
}

// mapUserVideo sets pid's 4KB user-visible video PTE, installing that
// task's dedicated page table on first use.
func mapUserVideo(taskPid int32, backingPhys uint32) {
	i := int(taskPid)
	if !userVideoTableInstalled[i] {
		for j := range userVideoTables[i] {
			userVideoTables[i][j] = 0
		}
		taskDirs[i][pdeIndex(UserVidAddr)] = buildPDE(addrOfTable(&userVideoTables[i]), bitfield.PDEFlags{
			Present: true, Writable: true, User: true,
		})
		userVideoTableInstalled[i] = true
	}
	pt := &userVideoTables[i]
	pt[pteIndex(UserVidAddr)] = buildPTE(backingPhys, bitfield.PTEFlags{Present: true, Writable: true, User: true})
}

// allocOffscreenVideo hands out one of the NumTerminals reserved 4KB frames
// backing a not-on-screen terminal's buffer.
func allocOffscreenVideo() (uint32, error) {
	for i := range videoBackingFrames {
		if videoBackingFrames[i] == 0 {
			f := allocFrame()
			if f == nil {
				return 0, ErrNoFreeSlot
			}
			videoBackingFrames[i] = f.physAddr
			return f.physAddr, nil
		}
	}
	return 0, ErrNoFreeSlot
}
