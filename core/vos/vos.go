// Package vos is the seam between the interpreter and the host operating
// system: standard streams, environment, executable search, process
// creation, reaping, and descriptor rebinding.
package vos

// VOS bundles the parts of the host a single process needs.
type VOS interface {
	VEnv
	VIO
}

// Host returns a VOS backed by the real process environment and streams.
func Host() VOS {
	return &hostOS{VEnv: &HostEnv{}, VIO: HostIO()}
}

type hostOS struct {
	VEnv
	VIO
}

// New combines an environment and a set of streams.
func New(env VEnv, files VIO) VOS {
	return &hostOS{VEnv: env, VIO: files}
}
