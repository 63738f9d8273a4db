//go:build darwin

package logger

import "syscall"

const ioctlTermioGet = syscall.TIOCGETA
