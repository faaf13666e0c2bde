//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

func resetTerminalMode() {}
