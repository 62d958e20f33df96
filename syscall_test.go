package main

import "testing"

func TestUserRangeValid(t *testing.T) {
	tests := []struct {
		ptr, n uint32
		want   bool
	}{
		{UserWinBase, 16, true},
		{UserWinBase + UserWinSize - 16, 16, true},
		{UserWinBase - 1, 16, false},
		{UserWinBase + UserWinSize - 15, 16, false},
		{0, 16, false},
	}
	for _, tt := range tests {
		if got := userRangeValid(tt.ptr, tt.n); got != tt.want {
			t.Errorf("userRangeValid(0x%x, %d) = %v, want %v", tt.ptr, tt.n, got, tt.want)
		}
	}
}

func TestSyscallEntryPointRejectsOutOfRangeNumbers(t *testing.T) {
	if got := syscallEntryPoint(0, 0, 0, 0); got != -1 {
		t.Errorf("syscall 0 = %d, want -1", got)
	}
	if got := syscallEntryPoint(maxSyscallNum+1, 0, 0, 0); got != -1 {
		t.Errorf("syscall %d = %d, want -1", maxSyscallNum+1, got)
	}
}

func TestValidFDRejectsUnusedAndOutOfRange(t *testing.T) {
	pcb := &PCB{}
	currentPCB = pcb

	if _, err := validFD(-1); err != ErrInvalidFD {
		t.Errorf("validFD(-1) error = %v, want ErrInvalidFD", err)
	}
	if _, err := validFD(MaxOpenFiles); err != ErrInvalidFD {
		t.Errorf("validFD(MaxOpenFiles) error = %v, want ErrInvalidFD", err)
	}
	if _, err := validFD(2); err != ErrInvalidFD {
		t.Errorf("validFD(2) on an unopened slot error = %v, want ErrInvalidFD", err)
	}

	pcb.Files[2] = FileDescriptor{InUse: true}
	if _, err := validFD(2); err != nil {
		t.Errorf("validFD(2) on an in-use slot error = %v, want nil", err)
	}
}

// TestCloseIdempotence covers spec.md 8: "calling close(fd) twice returns
// 0 then -1."
func TestCloseIdempotence(t *testing.T) {
	pcb := &PCB{}
	pcb.Files[2] = FileDescriptor{Ops: RegularFile{}, InUse: true}
	currentPCB = pcb

	if got := sysClose(2); got != 0 {
		t.Errorf("first close = %d, want 0", got)
	}
	if got := sysClose(2); got != -1 {
		t.Errorf("second close = %d, want -1", got)
	}
}

func TestCloseRefusesStandardFDs(t *testing.T) {
	pcb := &PCB{}
	pcb.Files[0] = FileDescriptor{Ops: Terminal{}, InUse: true}
	pcb.Files[1] = FileDescriptor{Ops: Terminal{}, InUse: true}
	currentPCB = pcb

	if got := sysClose(0); got != -1 {
		t.Errorf("close(0) = %d, want -1", got)
	}
	if got := sysClose(1); got != -1 {
		t.Errorf("close(1) = %d, want -1", got)
	}
}
