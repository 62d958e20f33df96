package main

import _ "unsafe" // for go:linkname

// elfMagic is the four-byte prefix every loadable image must start with
// (spec.md 4.5, 6).
var elfMagic = [4]byte{0x7F, 'E', 'L', 'F'}

const elfEntryOffset = 24
const elfHeaderProbeLen = 40

// consoleOverrideState implements the con_ovr resolution recorded in
// SPEC_FULL.md: set only by scheduler.go's bootstrap path, consulted and
// cleared exactly once here.
var consoleOverrideState consoleOverride

// loadProgram resolves path, validates the ELF prefix, allocates a process
// slot and address space, copies the image into the user window and
// constructs the child PCB. Grounded on
// original_source/.../filesys.c's parse_exec + the entry-point extraction
// from the first forty bytes of the image.
func loadProgram(path string, parent *PCB) (*PCB, uint32, error) {
	// Validate before touching any slot, so a bad path never costs a task.
	dentry, err := validateImage(path)
	if err != nil {
		return nil, 0, err
	}

	pid, err := newProcessTable() // switches CR3 to the new slot
	if err != nil {
		return nil, 0, err
	}

	entry := copyImage(dentry)

	pcb := &pcbPool[pid]
	*pcb = PCB{}
	pcb.Pid = pid
	if parent != nil {
		pcb.ParentPid = parent.Pid
		pcb.Terminal = parent.Terminal
	} else {
		pcb.ParentPid = -1
	}

	if consoleOverrideState.flag {
		pcb.Terminal = consoleOverrideState.idx
		consoleOverrideState.flag = false // cleared after exactly one use
	}

	return pcb, entry, nil
}

// validateImage resolves path to a regular-file dentry and checks its ELF
// prefix, without touching the currently-mapped address space.
func validateImage(path string) (Dentry, error) {
	dentry, err := readDentryByName(path)
	if err != nil {
		return Dentry{}, ErrNotFound
	}
	if dentry.Type != FileTypeRegular {
		return Dentry{}, ErrNotExecutable
	}

	var header [elfHeaderProbeLen]byte
	if n := readBytes(dentry.InodeNum, 0, header[:]); n < elfHeaderProbeLen {
		return Dentry{}, ErrNotExecutable
	}
	for i, b := range elfMagic {
		if header[i] != b {
			return Dentry{}, ErrNotExecutable
		}
	}
	return dentry, nil
}

// copyImage copies dentry's data blocks into whichever address space is
// presently mapped via CR3 and returns the image's entry point, extracted
// from the header's byte offset 24. The caller must already have switched
// CR3 to the destination task's directory.
func copyImage(dentry Dentry) uint32 {
	var header [elfHeaderProbeLen]byte
	readBytes(dentry.InodeNum, 0, header[:])

	length := inodeLength(dentry.InodeNum)
	var chunk [BlockSize]byte
	for off := uint32(0); off < length; off += BlockSize {
		n := readBytes(dentry.InodeNum, off, chunk[:])
		if n == 0 {
			break
		}
		copyToUserWindowAt(off, chunk[:n])
	}

	return uint32(header[elfEntryOffset]) |
		uint32(header[elfEntryOffset+1])<<8 |
		uint32(header[elfEntryOffset+2])<<16 |
		uint32(header[elfEntryOffset+3])<<24
}

// copyToUserWindowAt writes chunk into the currently-mapped task's 4MB user
// window at offset bytes past its fixed virtual load address. The caller
// must already have switched CR3 to the destination task's directory
// (newProcessTable does this before loadProgram calls copyImage).
//
//go:linkname copyToUserWindowAt copy_to_user_window_at
func copyToUserWindowAt(offset uint32, chunk []byte)
