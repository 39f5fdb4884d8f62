//go:build linux

package shell

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// pushTIOCSTI fakes terminal input one byte at a time
func pushTIOCSTI(f *os.File, text string) error {
	fd := f.Fd()
	for i := 0; i < len(text); i++ {
		b := text[i]
		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, unix.TIOCSTI, uintptr(unsafe.Pointer(&b))); errno != 0 {
			return errno
		}
	}
	return nil
}

// KernelRelease returns the running kernel release, e.g. "6.8.0-45-generic"
func KernelRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Release[:]), nil
}
