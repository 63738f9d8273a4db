//go:build linux

package logger

// TCGETS
const ioctlTermioGet = 0x5401
