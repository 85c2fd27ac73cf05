package crypto

import "runtime"

// Wipe zeroes key material once it is no longer needed.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
