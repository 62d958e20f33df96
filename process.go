package main

import (
	"kernel391/hal"

	_ "unsafe" // for go:linkname
)

// pcbPool is the fixed arena every live PCB lives in; process slots map
// 1:1 onto paging.go's taskDirs (spec.md invariant: "the 4 MiB physical
// region... is owned by the task currently in slot i and by no other").
var pcbPool [MaxTasks]PCB

// currentPCB is whichever task is presently running on this (the only) CPU.
var currentPCB *PCB

// parseCommandLine splits a command line into the program name and the
// argument string, per spec.md 4.6: the leading word is the program name,
// the remainder (after stripping separating and trailing spaces) is the
// argument string, bounded at ArgsBufSize.
func parseCommandLine(line string) (prog string, args string) {
	i := 0
	for i < len(line) && line[i] != ' ' {
		i++
	}
	prog = line[:i]
	for i < len(line) && line[i] == ' ' {
		i++
	}
	j := len(line)
	for j > i && line[j-1] == ' ' {
		j--
	}
	args = line[i:j]
	if len(args) > ArgsBufSize {
		args = args[:ArgsBufSize]
	}
	return prog, args
}

// execute implements spec.md 4.6's execute(command_line). It never returns
// in the usual sense on success: control transitions to ring 3 via
// hal.EnterUserMode and the syscall return value instead arrives later,
// through halt's HaltReturn path, back into the caller's original stack
// frame.
func execute(commandLine string) int32 {
	prog, args := parseCommandLine(commandLine)

	caller := currentPCB

	pcb, entry, err := loadProgram(prog, caller)
	if err != nil {
		return -1
	}

	pcb.ArgsLen = copy(pcb.Args[:], args)

	term := Terminal{}
	pcb.Files[0] = FileDescriptor{Ops: term, InUse: true}
	pcb.Files[1] = FileDescriptor{Ops: term, InUse: true}

	if caller != nil {
		saveCallerContext(caller)
		schedulerMarkAsleep(caller.Pid)
	}

	schedulerInsertFront(pcb)

	hal.SetKernelStack(kernelStackTop(pcb))

	currentPCB = pcb
	hal.EnterUserMode(entry, userStackTop())

	panic("unreachable: EnterUserMode does not return")
}

// halt implements spec.md 4.6's halt(status). The bootstrap-shell special
// case (parent == -1, i.e. pid 0..2) restarts the shell in place rather
// than unwinding to a parent that does not exist.
func halt(status int32) {
	pcb := currentPCB

	if pcb.ParentPid == -1 {
		consoleClear(pcb.Terminal)
		*pcb = PCB{Pid: pcb.Pid, ParentPid: -1, Terminal: pcb.Terminal}
		entry := reExecuteShell(pcb)
		hal.SetKernelStack(kernelStackTop(pcb))
		hal.EnterUserMode(entry, userStackTop())
		panic("unreachable: EnterUserMode does not return")
	}

	for i := range pcb.Files {
		pcb.Files[i] = FileDescriptor{}
	}
	pcb.VidmapSet = false

	parent := &pcbPool[pcb.ParentPid]
	returnToParent(pcb.Pid, pcb.ParentPid)

	currentPCB = parent
	schedulerRemove(pcb.Pid)
	schedulerMoveFrontAndWake(parent.Pid)

	hal.SetKernelStack(kernelStackTop(parent))
	hal.HaltReturn(uint32(status), parent.Saved.ESP, parent.Saved.EBP, parent.Saved.Entry)

	panic("unreachable: HaltReturn does not return")
}

// reExecuteShell re-runs the bootstrap shell binary in the task's own,
// already-mapped slot after its PCB has been reset: unlike execute(), it
// must not call newProcessTable, which would hand the relaunch a second
// slot and leave the original one permanently marked in-use.
func reExecuteShell(pcb *PCB) uint32 {
	dentry, err := validateImage("shell")
	if err != nil {
		abortBoot("failed to relaunch bootstrap shell")
	}
	entry := copyImage(dentry)
	pcb.ArgsLen = 0
	term := Terminal{}
	pcb.Files[0] = FileDescriptor{Ops: term, InUse: true}
	pcb.Files[1] = FileDescriptor{Ops: term, InUse: true}
	return entry
}

func saveCallerContext(pcb *PCB) {
	pcb.Saved = currentSavedContext()
}

//go:linkname currentSavedContext current_saved_context
func currentSavedContext() hal.SavedContext

//go:linkname kernelStackTop kernel_stack_top
func kernelStackTop(pcb *PCB) uint32

//go:linkname userStackTop user_stack_top
func userStackTop() uint32
