package main

import (
	"kernel391/hal"

	_ "unsafe" // for go:linkname
)

// readyQueue is the fixed-size ready queue (spec.md 3, 4.7). Entry 0 is
// always "whichever task is currently running"; rotation happens by
// popping the head and pushing it to the tail, grounded line-for-line on
// original_source/.../scheduling.c's task_push/task_pop.
var readyQueue [MaxTasks]TaskQueueEntry
var shellsStarted int

// schedulerInit programs the PIT at 100Hz (rate-generator mode) and
// registers its IRQ, with the line masked until setup is complete so no
// tick can interrupt an uninitialized queue. Grounded on scheduling.c's
// init_schedule.
func schedulerInit() {
	picDisable(IRQTimer)

	divisor := uint16(PITClockHz / QuantumHz)
	hal.OutByte(PITCommand, PITCmdWord)
	hal.OutByte(PITChannel0, uint8(divisor&0xFF))
	hal.OutByte(PITChannel0, uint8(divisor>>8))

	for i := range readyQueue {
		readyQueue[i] = TaskQueueEntry{}
		readyQueue[i].Enabled = true
	}
	shellsStarted = 0

	picEnable(IRQTimer)
}

// taskPush appends entry to the first empty slot (PCB == nil), mirroring
// scheduling.c's task_push.
func taskPush(entry TaskQueueEntry) {
	for i := range readyQueue {
		if readyQueue[i].PCB == nil {
			readyQueue[i] = entry
			return
		}
	}
}

// taskPop removes the entry whose PCB matches target, shifting every
// later entry down one slot, mirroring scheduling.c's task_pop.
func taskPop(target *PCB) TaskQueueEntry {
	for i := range readyQueue {
		if readyQueue[i].PCB == target {
			popped := readyQueue[i]
			for j := i; j < MaxTasks-1; j++ {
				readyQueue[j] = readyQueue[j+1]
			}
			readyQueue[MaxTasks-1] = TaskQueueEntry{Enabled: true}
			return popped
		}
	}
	return TaskQueueEntry{}
}

func schedulerInsertFront(pcb *PCB) {
	entry := TaskQueueEntry{PCB: pcb, State: StateRunnable, Enabled: true}
	for i := MaxTasks - 1; i > 0; i-- {
		readyQueue[i] = readyQueue[i-1]
	}
	readyQueue[0] = entry
}

func schedulerRemove(pid int32) {
	taskPop(&pcbPool[pid])
}

func schedulerMarkAsleep(pid int32) {
	for i := range readyQueue {
		if readyQueue[i].PCB == &pcbPool[pid] {
			readyQueue[i].Enabled = false
			return
		}
	}
}

// schedulerMoveFrontAndWake re-inserts pid at the head of the queue and
// marks it enabled again, the halt()-side counterpart to
// schedulerMarkAsleep (spec.md 4.6: "pull the parent back to the front and
// mark runnable").
func schedulerMoveFrontAndWake(pid int32) {
	schedulerRemove(pid)
	entry := TaskQueueEntry{PCB: &pcbPool[pid], State: StateRunnable, Enabled: true}
	for i := MaxTasks - 1; i > 0; i-- {
		readyQueue[i] = readyQueue[i-1]
	}
	readyQueue[0] = entry
}

// pitTick is the timer ISR body (spec.md 4.7), grounded on scheduling.c's
// pit_interrupt. Cases, in order: (1) fewer than three shells exist yet,
// spawn the next one bound to the terminal it should own; (2) otherwise
// rotate until the head is enabled and switch to it.
//
//go:nosplit
func pitTick() {
	if currentPCB != nil {
		readyQueue[0].Context = currentSavedContext()
		readyQueue[0].State = StateRunnable
	}

	if shellsStarted < NumTerminals {
		consoleOverrideState = consoleOverride{idx: shellsStarted, flag: true}
		shellsStarted++
		picEOI(IRQTimer)
		enableInterrupts()
		currentPCB = nil // bootstrap shells have no parent (ParentPid -1)
		execute("shell")
		return // reached only if execute fails; on success it does not return
	}

	temp := readyQueue[0]
	for {
		taskPop(temp.PCB)
		taskPush(temp)
		temp = readyQueue[0]
		if temp.Enabled {
			break
		}
	}

	readyQueue[0].State = StateRunning
	hal.SetKernelStack(kernelStackTop(readyQueue[0].PCB))

	if readyQueue[0].PCB != nil {
		switchTo(readyQueue[0].PCB.Pid)
		currentPCB = readyQueue[0].PCB
		restoreSavedContext(readyQueue[0].Context)
	}

	picEOI(IRQTimer)
}

//go:linkname enableInterrupts sti
//go:nosplit
func enableInterrupts()

//go:linkname restoreSavedContext restore_saved_context
//go:nosplit
func restoreSavedContext(ctx hal.SavedContext)
