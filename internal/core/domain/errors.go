package domain

import "go.trai.ch/zerr"

var (
	// ErrInputNotFound is returned when a declared input path does not exist on disk.
	ErrInputNotFound = zerr.New("input not found")

	// ErrSessionInit is returned when constructing an external tool handle fails.
	ErrSessionInit = zerr.New("session initialization failed")

	// ErrInvocation is returned when the tool invocation for a single input file fails.
	ErrInvocation = zerr.New("tool invocation failed")

	// ErrCyclicDependency is returned when the module graph contains a dependency cycle.
	ErrCyclicDependency = zerr.New("cyclic dependency detected")

	// ErrModuleNotFound is returned when a module references a dependency that doesn't exist in the graph.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrModuleAlreadyExists is returned when attempting to add a module with a name that already exists.
	ErrModuleAlreadyExists = zerr.New("module already exists")

	// ErrNoModulesSpecified is returned when a command is invoked without any target modules.
	ErrNoModulesSpecified = zerr.New("no modules specified")

	// ErrSessionClosed is returned when acquiring a handle from a closed session.
	ErrSessionClosed = zerr.New("session closed")
)
