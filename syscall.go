package main

import _ "unsafe" // for go:linkname

// syscallEntryPoint is called by the vector-0x80 assembly trampoline with
// the three argument registers already unpacked into a uniform 3-arg Go
// call (spec.md 4.9, Design Notes: "hide in a single assembly trampoline;
// the dispatcher sees a uniform 3-argument C-style call"). It validates
// the syscall number, dispatches, and returns the accumulator value the
// trampoline places before iret.
//
//go:nosplit
func syscallEntryPoint(num int32, a1, a2, a3 uint32) int32 {
	if num < 1 || num > maxSyscallNum {
		return errnoOf(ErrInvalidArg)
	}
	switch num {
	case SysHalt:
		halt(int32(a1))
		return 0 // unreachable: halt never returns to its own caller
	case SysExecute:
		return sysExecute(a1)
	case SysRead:
		return sysRead(int32(a1), a2, a3)
	case SysWrite:
		return sysWrite(int32(a1), a2, a3)
	case SysOpen:
		return sysOpen(a1)
	case SysClose:
		return sysClose(int32(a1))
	case SysGetargs:
		return sysGetargs(a1, a2)
	case SysVidmap:
		return sysVidmap(a1)
	}
	return errnoOf(ErrInvalidArg)
}

func sysExecute(cmdPtr uint32) int32 {
	cmd, ok := userString(cmdPtr, ArgsBufSize)
	if !ok {
		return errnoOf(ErrInvalidArg)
	}
	return execute(cmd)
}

func sysRead(fdNum int32, bufPtr, n uint32) int32 {
	fd, err := validFD(fdNum)
	if err != nil {
		return errnoOf(err)
	}
	buf, ok := userBuffer(bufPtr, n)
	if !ok {
		return errnoOf(ErrInvalidArg)
	}
	got, err := fd.Ops.Read(fd, buf)
	if err != nil {
		return errnoOf(err)
	}
	return int32(got)
}

func sysWrite(fdNum int32, bufPtr, n uint32) int32 {
	fd, err := validFD(fdNum)
	if err != nil {
		return errnoOf(err)
	}
	buf, ok := userBuffer(bufPtr, n)
	if !ok {
		return errnoOf(ErrInvalidArg)
	}
	got, err := fd.Ops.Write(fd, buf)
	if err != nil {
		return errnoOf(err)
	}
	return int32(got)
}

// sysOpen resolves path, picks the FileOps implementation by the dentry's
// on-disk type (spec.md Design Notes' "tagged variant... dispatched by
// match"), and installs it in the first free FD slot.
func sysOpen(pathPtr uint32) int32 {
	path, ok := userString(pathPtr, MaxFilename)
	if !ok {
		return errnoOf(ErrInvalidArg)
	}
	dentry, err := readDentryByName(path)
	if err != nil {
		return errnoOf(err)
	}

	var ops FileOps
	switch dentry.Type {
	case FileTypeRTC:
		ops = RTCDevice{}
	case FileTypeDir:
		ops = Directory{}
	case FileTypeRegular:
		ops = RegularFile{}
	default:
		return errnoOf(ErrNotExecutable)
	}

	pcb := currentPCB
	for i := 2; i < MaxOpenFiles; i++ { // FDs 0,1 are always the terminal
		if !pcb.Files[i].InUse {
			if err := ops.Open(path); err != nil {
				return errnoOf(err)
			}
			pcb.Files[i] = FileDescriptor{Ops: ops, Inode: dentry.InodeNum, InUse: true}
			return int32(i)
		}
	}
	return errnoOf(ErrNoFreeSlot)
}

// sysClose refuses FDs 0 and 1 (spec.md 4.9: "refuses fd in {0,1}").
func sysClose(fdNum int32) int32 {
	if fdNum == 0 || fdNum == 1 {
		return errnoOf(ErrPermission)
	}
	fd, err := validFD(fdNum)
	if err != nil {
		return errnoOf(err)
	}
	fd.Ops.Close(fd)
	fd.InUse = false
	return 0
}

// sysGetargs copies the PCB's argument buffer if it fits and is non-empty
// (spec.md 4.9).
func sysGetargs(bufPtr, n uint32) int32 {
	pcb := currentPCB
	if pcb.ArgsLen == 0 || uint32(pcb.ArgsLen) > n {
		return errnoOf(ErrInvalidArg)
	}
	buf, ok := userBuffer(bufPtr, uint32(pcb.ArgsLen))
	if !ok {
		return errnoOf(ErrInvalidArg)
	}
	copy(buf, pcb.Args[:pcb.ArgsLen])
	return 0
}

// sysVidmap validates p lies within the user window, maps the task's
// video page, and writes the user-visible mapping's virtual address
// through *p (spec.md 4.9).
func sysVidmap(pPtr uint32) int32 {
	if pPtr < UserWinBase || pPtr >= UserWinBase+UserWinSize {
		return errnoOf(ErrInvalidArg)
	}
	pcb := currentPCB
	phys, err := allocOffscreenVideo()
	if err != nil {
		return errnoOf(err)
	}
	mapUserVideo(pcb.Pid, phys)
	pcb.VidmapSet = true
	if !writeUserU32(pPtr, UserVidAddr) {
		return errnoOf(ErrInvalidArg)
	}
	return 0
}

func validFD(fdNum int32) (*FileDescriptor, error) {
	if fdNum < 0 || fdNum >= MaxOpenFiles {
		return nil, ErrInvalidFD
	}
	fd := &currentPCB.Files[fdNum]
	if !fd.InUse {
		return nil, ErrInvalidFD
	}
	return fd, nil
}

// userBuffer validates that [ptr, ptr+n) lies within the calling task's
// user window (spec.md 7: "Buffer pointers passed from user code are
// validated to lie within [USER_WINDOW_BASE, USER_WINDOW_BASE +
// USER_WINDOW_SIZE)") and returns a Go slice view over it.
func userBuffer(ptr, n uint32) ([]byte, bool) {
	if !userRangeValid(ptr, n) {
		return nil, false
	}
	return userWindowSlice(ptr, n), true
}

// userRangeValid is the pure bounds check behind userBuffer, split out so
// it can be exercised without crossing into the linknamed memory-access
// primitive.
func userRangeValid(ptr, n uint32) bool {
	return ptr >= UserWinBase && uint64(ptr)+uint64(n) <= uint64(UserWinBase)+uint64(UserWinSize)
}

func userString(ptr uint32, maxLen int) (string, bool) {
	buf, ok := userBuffer(ptr, uint32(maxLen))
	if !ok {
		return "", false
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i]), true
		}
	}
	return string(buf), true
}

//go:linkname userWindowSlice user_window_slice
func userWindowSlice(ptr, n uint32) []byte

//go:linkname writeUserU32 write_user_u32
func writeUserU32(ptr uint32, val uint32) bool
