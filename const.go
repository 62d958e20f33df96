package main

// Task table and terminal geometry, fixed at compile time: there is no
// heap, so every arena below is a Go array sized to its maximum.
const (
	MaxTasks     = 6 // N in spec.md's PCB table
	NumTerminals = 3
	MaxOpenFiles = 8

	MaxFilename = 32
	DentrySize  = 64
	MaxDentries = 63
	BlockSize   = 4096
	MaxDataBlk  = 1023

	ArgsBufSize = 128
)

// Console geometry and the packed cell format (spec.md 4.8).
const (
	ScreenCols = 80
	ScreenRows = 25
	LineBufLen = ScreenCols + 49 // matches the donor's 129-byte input line

	VGATextBase = 0xB8000

	CRTCIndexPort = 0x3D4
	CRTCDataPort  = 0x3D5
	CRTCCursorHi  = 0x0E
	CRTCCursorLo  = 0x0F
)

// PIT: rate-generator mode, divisor = base clock / quantum rate.
const (
	PITChannel0 = 0x40
	PITCommand  = 0x43
	PITCmdWord  = 0x34 // channel 0, lo/hi byte, mode 2 (rate generator)
	PITClockHz  = 1193180
	QuantumHz   = 100
)

// IRQ line numbers, as wired on the legacy PC/AT cascade.
const (
	IRQTimer    = 0
	IRQKeyboard = 1
	IRQCascade  = 2
	IRQRTC      = 8
)

// Paging layout (spec.md 3).
const (
	PageSize4K  = 4096
	PageSize4M  = 4 * 1024 * 1024
	KernelEnd   = 8 * PageSize4M / 2 // 4MiB: end of the identity region, start of the kernel's own large page
	UserWinBase = 128 * 1024 * 1024  // fixed virtual base for every task's 4MiB user window
	UserWinSize = PageSize4M
	UserVidAddr = 0x400000 // per-task user-visible video window, low-kernel range

	VideoPhysAddr = VGATextBase
)

// Syscall vector and numbers (spec.md 4.9, 6).
const (
	SyscallVector = 0x80

	SysHalt    = 1
	SysExecute = 2
	SysRead    = 3
	SysWrite   = 4
	SysOpen    = 5
	SysClose   = 6
	SysGetargs = 7
	SysVidmap  = 8

	maxSyscallNum = 8
)

// Dentry file types (spec.md 3).
const (
	FileTypeRTC     = 0
	FileTypeDir     = 1
	FileTypeRegular = 2
)

// TaskState enumerates a task queue entry's scheduling state.
type TaskState int

const (
	StateRunnable TaskState = iota
	StateRunning
	StateAsleep
)
