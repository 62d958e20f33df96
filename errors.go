package main

import "errors"

// Error kinds from spec.md §7. Every one of these reaches user code only as
// -1 in the syscall accumulator; internally they are ordinary Go errors so
// the subsystems that aren't running on an interrupt-entry stack (filesystem,
// scheduler bookkeeping, console line discipline) can use errors.Is/wrapping
// the way guillermo-go.procstat does.
var (
	ErrNotFound      = errors.New("kernel391: not found")
	ErrNotExecutable = errors.New("kernel391: not executable")
	ErrNoFreeSlot    = errors.New("kernel391: no free task slot")
	ErrInvalidFD     = errors.New("kernel391: invalid file descriptor")
	ErrInvalidArg    = errors.New("kernel391: invalid argument")
	ErrPermission    = errors.New("kernel391: permission denied")
	ErrIO            = errors.New("kernel391: io error")
)

// errnoOf maps an internal error to the syscall ABI's universal failure
// sentinel. Every defined call in spec.md 4.9 returns -1 on any of these;
// the discriminant itself never crosses into user space.
func errnoOf(err error) int32 {
	if err == nil {
		return 0
	}
	return -1
}
