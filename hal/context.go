package hal

import _ "unsafe" // for go:linkname

// SavedContext is the {esp, ebp} pair a task needs restored to resume
// exactly where the scheduler interrupted it. Entry is a resume address:
// halt passes a parent's saved Entry to HaltReturn as the address to
// return the parent to.
type SavedContext struct {
	ESP   uint32
	EBP   uint32
	Entry uint32
}

// SwitchContext saves the running task's esp/ebp into *from and loads
// to.ESP/to.EBP, returning into whatever called switch on the other side.
// Implemented in assembly; there is no Go body because the stack pointer
// itself changes out from under the call.
//
//go:linkname SwitchContext context_switch
//go:nosplit
func SwitchContext(from *SavedContext, to *SavedContext)
