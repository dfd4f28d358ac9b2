package sim

import "errors"

// Fatal start-up conditions shared by every host.
var (
	// ErrContextUnavailable means no drawing surface could be created.
	ErrContextUnavailable = errors.New("drawing context unavailable")
	// ErrShaderBuild means the host's shader program failed to compile.
	ErrShaderBuild = errors.New("shader program build failed")
)
