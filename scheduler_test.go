package main

import "testing"

func resetQueue() {
	for i := range readyQueue {
		readyQueue[i] = TaskQueueEntry{}
		readyQueue[i].Enabled = true
	}
}

func TestTaskPushFillsFirstEmptySlot(t *testing.T) {
	resetQueue()
	p := &PCB{Pid: 1}
	taskPush(TaskQueueEntry{PCB: p, Enabled: true})

	if readyQueue[0].PCB != p {
		t.Fatalf("taskPush did not land in slot 0: %+v", readyQueue[0])
	}
}

func TestTaskPopShiftsRemainingEntriesDown(t *testing.T) {
	resetQueue()
	a := &PCB{Pid: 1}
	b := &PCB{Pid: 2}
	c := &PCB{Pid: 3}
	taskPush(TaskQueueEntry{PCB: a, Enabled: true})
	taskPush(TaskQueueEntry{PCB: b, Enabled: true})
	taskPush(TaskQueueEntry{PCB: c, Enabled: true})

	taskPop(a)

	if readyQueue[0].PCB != b || readyQueue[1].PCB != c {
		t.Fatalf("taskPop did not shift queue correctly: %+v %+v", readyQueue[0], readyQueue[1])
	}
	if readyQueue[MaxTasks-1].PCB != nil {
		t.Fatalf("taskPop left a stale PCB at the tail: %+v", readyQueue[MaxTasks-1])
	}
}

// TestStrictRoundRobinAmongEnabledShells covers spec.md 8's boundary
// behavior: "Scheduling with all three shells enabled and no children
// rotates strictly in order 0->1->2->0."
func TestStrictRoundRobinAmongEnabledShells(t *testing.T) {
	resetQueue()
	shells := [NumTerminals]*PCB{{Pid: 0}, {Pid: 1}, {Pid: 2}}
	for _, s := range shells {
		taskPush(TaskQueueEntry{PCB: s, Enabled: true})
	}

	var order []int32
	for i := 0; i < 6; i++ {
		order = append(order, readyQueue[0].PCB.Pid)
		temp := readyQueue[0]
		taskPop(temp.PCB)
		taskPush(temp)
	}

	want := []int32{0, 1, 2, 0, 1, 2}
	for i, pid := range want {
		if order[i] != pid {
			t.Fatalf("rotation order = %v, want %v", order, want)
		}
	}
}

func TestRotationSkipsDisabledShell(t *testing.T) {
	resetQueue()
	a := &PCB{Pid: 0}
	b := &PCB{Pid: 1}
	taskPush(TaskQueueEntry{PCB: a, Enabled: false}) // asleep: has an active child
	taskPush(TaskQueueEntry{PCB: b, Enabled: true})

	temp := readyQueue[0]
	for !temp.Enabled {
		taskPop(temp.PCB)
		taskPush(temp)
		temp = readyQueue[0]
	}

	if temp.PCB != b {
		t.Fatalf("rotation landed on disabled task, got pid %d want %d", temp.PCB.Pid, b.Pid)
	}
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		in       string
		wantProg string
		wantArgs string
	}{
		{"ls", "ls", ""},
		{"cat file.txt", "cat", "file.txt"},
		{"grep   foo   bar  ", "grep", "foo   bar"},
	}
	for _, tt := range tests {
		prog, args := parseCommandLine(tt.in)
		if prog != tt.wantProg || args != tt.wantArgs {
			t.Errorf("parseCommandLine(%q) = (%q, %q), want (%q, %q)", tt.in, prog, args, tt.wantProg, tt.wantArgs)
		}
	}
}
