package oclp

import "errors"

var (
	ErrProbeUnavailable   = errors.New("probe unavailable")
	ErrNotConnected       = errors.New("not connected")
	ErrTimeout            = errors.New("timeout")
	ErrAccessDenied       = errors.New("access denied")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrKextNotFound       = errors.New("kext not found in config document")
)
