package main

import "kernel391/hal"

// Dentry is a 64-byte directory entry as laid out on disk (spec.md 3),
// minus the 24 reserved bytes no reader consults.
type Dentry struct {
	Name     [MaxFilename]byte
	Type     uint32
	InodeNum uint32
}

// nameLen returns the length of the dentry's name, bounded at MaxFilename:
// names on disk are not null-terminated when they fill the whole field.
func (d *Dentry) nameLen() int {
	for i := 0; i < MaxFilename; i++ {
		if d.Name[i] == 0 {
			return i
		}
	}
	return MaxFilename
}

func (d *Dentry) nameString() string {
	return string(d.Name[:d.nameLen()])
}

// Inode is an on-disk inode block: a byte length and up to 1023 data-block
// indices (spec.md 3).
type Inode struct {
	Length     uint32
	DataBlocks [MaxDataBlk]uint32
}

// FileOps is the capability set a file descriptor dispatches through
// (spec.md Design Notes: "tagged variant... dispatched by match, rather
// than a vtable"). Each concrete type below implements it; syscall.go's
// open() picks the concrete type with a type switch instead of hiding
// dispatch behind an opaque function-pointer table.
type FileOps interface {
	Open(path string) error
	Read(fd *FileDescriptor, buf []byte) (int, error)
	Write(fd *FileDescriptor, buf []byte) (int, error)
	Close(fd *FileDescriptor) error
}

// FileDescriptor is one entry in a task's open-file table (spec.md 3).
type FileDescriptor struct {
	Ops   FileOps
	Inode uint32
	Pos   uint32
	InUse bool
}

// PCB is the fixed-size per-task record described in spec.md 3. PCBs are
// never heap-allocated: process.go and scheduler.go only ever hand out
// pointers into the fixed pcbPool array.
type PCB struct {
	Pid       int32
	ParentPid int32 // -1 for the three bootstrap shells

	Files [MaxOpenFiles]FileDescriptor

	// Saved kernel stack pointers at the last voluntary switch (execute's
	// save-before-iret, halt's restore-into-parent).
	Saved hal.SavedContext

	Args    [ArgsBufSize]byte
	ArgsLen int

	VidmapSet bool
	Terminal  int
}

// TaskQueueEntry is one slot of the scheduler's ready queue (spec.md 3).
type TaskQueueEntry struct {
	PCB     *PCB
	Context hal.SavedContext
	State   TaskState
	Enabled bool
}

// VTState is the console-state block embedded in each virtual terminal
// (spec.md 3): cursor position and the behavioral flags that putchar,
// backspace and readline all consult.
type VTState struct {
	CursorX, CursorY int

	CursorVisible    bool
	EchoEnabled      bool
	AutoIncrement    bool
	WrapEnabled      bool
	ScrollEnabled    bool
	DriverInitalised bool

	BkspStop    int // left edge column for the in-progress line-input read
	BkspStopRow int // row the line-input read started on

	Attr CellStyle
}

// CellStyle is the character style consulted by putchar (spec.md 4.8).
// cellOf packs Foreground as the attribute byte's 4-bit foreground nibble,
// Background as 3 bits and Blink as 1 bit; Intensity and Underline are not
// packed into the cell.
type CellStyle struct {
	Foreground uint8
	Background uint8
	Intensity  bool
	Blink      bool
	Underline  bool
}

// VirtualTerminal is one of the NumTerminals screen buffers (spec.md 3).
type VirtualTerminal struct {
	Present  bool
	ID       int
	OnScreen bool

	State VTState

	Buffer [ScreenRows * ScreenCols]uint16 // packed {codepoint, attr} cells

	LineBuf   [LineBufLen]byte
	LineLen   int
	LineReady bool // set by the keyboard ISR when a readline() completes
}

// KeyboardState is the modifier/auto-repeat record maintained by
// keyboard.go (spec.md 3).
type KeyboardState struct {
	Ctrl, Alt, Shift, CapsLock bool

	LastRawKey  uint8 // suppresses auto-repeat until a release clears it
	LastDecoded byte
}

// consoleOverride implements the con_ovr resolution from SPEC_FULL.md's
// supplemented-feature section: set only by scheduler.go's bootstrap path,
// consulted and cleared exactly once by loader.go.
type consoleOverride struct {
	idx  int
	flag bool
}
