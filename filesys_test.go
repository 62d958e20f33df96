package main

import "testing"

// The go:linkname'd memReadByte/memReadU32 have no Go body in production;
// these tests instead exercise the pure functions that don't cross the
// hal boundary (name bounding, boundary arithmetic) directly.

func TestDentryNameLenBoundsAtMaxFilename(t *testing.T) {
	var d Dentry
	copy(d.Name[:], "exactly_thirty_two_bytes_long!!!") // 32 chars: fills the array, no null terminator
	if got := d.nameLen(); got != MaxFilename {
		t.Errorf("nameLen() = %d, want %d (full field, no null terminator)", got, MaxFilename)
	}
}

func TestDentryNameLenStopsAtNull(t *testing.T) {
	var d Dentry
	copy(d.Name[:], "ls")
	if got := d.nameLen(); got != 2 {
		t.Errorf("nameLen() = %d, want 2", got)
	}
	if got := d.nameString(); got != "ls" {
		t.Errorf("nameString() = %q, want %q", got, "ls")
	}
}
