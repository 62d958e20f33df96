package main

import "testing"

// resetTerminal clears terminal idx's cursor/bkspstop state for a clean
// test fixture. idx is kept != onScreenIdx (which defaults to 0) so these
// tests never cross into the linknamed video-memory primitives.
func resetTerminal(idx int) {
	terminals[idx] = VirtualTerminal{Present: true, ID: idx}
}

// TestReadlineRecordsColumnNotLinearIndex covers the bkspstop fix: it must
// record the starting column, not row*ScreenCols+col.
func TestReadlineRecordsColumnNotLinearIndex(t *testing.T) {
	resetTerminal(1)
	terminals[1].State.CursorY = 1
	terminals[1].State.CursorX = 10
	terminals[1].LineReady = true // so readline's busy-wait exits immediately

	readline(1, make([]byte, 4))

	if got := terminals[1].State.BkspStop; got != 10 {
		t.Errorf("BkspStop = %d, want 10 (the column)", got)
	}
	if got := terminals[1].State.BkspStopRow; got != 1 {
		t.Errorf("BkspStopRow = %d, want 1", got)
	}
}

// TestBackspaceStopsAtColumnOnNonZeroRow is the concrete scenario from the
// reported bug: a line-input read starting at row 1, col 10, typed to col
// 13, must still be able to backspace down to col 10.
func TestBackspaceStopsAtColumnOnNonZeroRow(t *testing.T) {
	resetTerminal(1)
	terminals[1].State.CursorY = 1
	terminals[1].State.CursorX = 10
	terminals[1].LineReady = true
	readline(1, make([]byte, 4))

	terminals[1].State.CursorX = 13

	backspace(1)
	if got := terminals[1].State.CursorX; got != 12 {
		t.Errorf("after 1st backspace CursorX = %d, want 12", got)
	}
	backspace(1)
	backspace(1)
	if got := terminals[1].State.CursorX; got != 10 {
		t.Errorf("after 3 backspaces CursorX = %d, want 10 (at bkspstop)", got)
	}

	// At bkspstop: further backspace must not move further left.
	backspace(1)
	if got := terminals[1].State.CursorX; got != 10 {
		t.Errorf("backspace at bkspstop moved CursorX to %d, want it to stay at 10", got)
	}
}
