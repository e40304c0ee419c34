// Package handlebox provides reference-counted ownership of raw resource
// handles for Go.
//
// A handle is any comparable value naming an external resource: a file
// descriptor, an OS HANDLE, a dlopen pointer, a WebAssembly module. A box
// pairs the handle with the function that releases it and guarantees the
// release runs exactly once, when the last box sharing the handle gives it
// up or when it is replaced.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	handlebox/           Root package, documentation only
//	├── handle/          Box, shared state, scoped writer and comparison
//	├── release/         Adapters turning functions and methods into release functions
//	├── registry/        Ordered table of shared boxes keyed by handle value
//	├── metrics/         Prometheus collector for box lifecycle events
//	├── sysfd/           Unix file descriptors and Windows HANDLEs
//	├── dynlib/          Shared libraries loaded with dlopen
//	├── engine/          wazero runtimes, compiled modules and instances
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Box a handle with its release function:
//
//	b := handle.New(fd, unix.Close)
//	defer b.Drop()
//
// Share it; the descriptor stays open until both holders are gone:
//
//	alias := b.Clone()
//	b.Drop()
//	unix.Write(alias.Get(), data)
//	alias.Drop() // closes fd
//
// Fill a box from an out parameter:
//
//	err := b.Out(func(p *int) error {
//	    fd, err := unix.Open(path, unix.O_RDONLY, 0)
//	    *p = fd
//	    return err
//	})
//
// # Reassigning and Detaching
//
// Assign replaces the handle in place: the previous handle is released and
// every alias observes the new value. ResetTo detaches the box instead: it
// gets a fresh state while aliases keep the old handle alive.
//
// # Thread Safety
//
// Reference counts are atomic, so aliases of one handle may be cloned and
// dropped from different goroutines. A single box must not be mutated from
// several goroutines at once. registry.Registry is safe for concurrent use.
//
// # Logging
//
// Packages log through zap. Loggers default to no-op; install one with
// handle.SetLogger, registry.SetLogger or engine.SetLogger.
package handlebox
