//go:build !linux

package shell

import "os"

func pushTIOCSTI(_ *os.File, _ string) error {
	return ErrTIOCSTIUnsupported
}

// KernelRelease is only known on linux
func KernelRelease() (string, error) {
	return "", ErrTIOCSTIUnsupported
}
