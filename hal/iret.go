package hal

import _ "unsafe" // for go:linkname

// EnterUserMode builds an IRET frame for (eip, esp) at user privilege and
// CPL-switches into it. It never returns to its caller; execution resumes at
// eip in Ring 3. Used once per process, the first time it runs.
//
//go:linkname EnterUserMode iret_to_user
func EnterUserMode(eip, esp uint32)

// HaltReturn unwinds the kernel stack built for a syscall/exception entry
// back to the return address saved by the squashed execute() call, placing
// status in the expected return register. Used by halt() to resume the
// parent without going through the normal syscall return path.
//
//go:linkname HaltReturn halt_return
func HaltReturn(status uint32, parentESP, parentEBP, returnAddr uint32)
