//go:build !windows

package nativewin

func newWin32Window(uintptr) backend {
	return nil
}
