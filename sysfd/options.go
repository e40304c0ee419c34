// Package sysfd boxes operating system handles: file descriptors on Unix and
// HANDLEs on Windows.
//
// Every box returned here closes its handle exactly once, when the last alias
// lets go or when Close is called:
//
//	f, err := sysfd.Open("/etc/hosts", unix.O_RDONLY, 0)
//	if err != nil {
//	    return err
//	}
//	defer f.Drop()
//
//	r, w, err := sysfd.Pipe()
//	defer sysfd.CloseAll(r, w)
//
// By default boxes also give up their reference when they are garbage
// collected, matching os.File.
package sysfd

import (
	"github.com/wippyai/handlebox/errors"
	"github.com/wippyai/handlebox/handle"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options configures boxes produced by an Opener.
type Options struct {
	Observer         handle.Observer
	ReleaseOnCollect bool
}

// DefaultOptions returns options that release handles on garbage collection.
func DefaultOptions() Options {
	return Options{
		ReleaseOnCollect: true,
	}
}

// Opener produces boxed handles with a fixed configuration.
type Opener struct {
	opts Options
}

// NewOpener creates an Opener.
func NewOpener(opts Options) *Opener {
	return &Opener{opts: opts}
}

var std = NewOpener(DefaultOptions())

// CloseAll closes every box in place and combines the errors. Each failure is
// a release/release_failed error carrying the handle that failed to close.
func CloseAll[T comparable](boxes ...*handle.Box[T, error]) error {
	var err error
	for _, b := range boxes {
		if b == nil {
			continue
		}
		h := b.Get()
		if cerr := b.Close(); cerr != nil {
			err = multierr.Append(err, errors.ReleaseFailed(h, cerr))
		}
	}
	return err
}

func opError(op, target string, cause error) error {
	handle.Logger().Debug("system handle operation failed",
		zap.String("op", op),
		zap.String("target", target),
		zap.Error(cause),
	)
	return errors.New(errors.PhaseOpen, errors.KindOpenFailed).
		Op(op).
		Detail("%s", target).
		Cause(cause).
		Build()
}
