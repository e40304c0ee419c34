//go:build unix

package sysfd

import (
	"runtime"
	"strconv"

	"github.com/wippyai/handlebox/handle"
	"golang.org/x/sys/unix"
)

// Null is the descriptor value meaning "no descriptor".
const Null = -1

// FD is a boxed Unix file descriptor.
type FD = handle.Box[int, error]

func (o *Opener) boxOptions() handle.Options[int] {
	return handle.Options[int]{
		Null:             Null,
		Observer:         o.opts.Observer,
		ReleaseOnCollect: o.opts.ReleaseOnCollect,
	}
}

// New takes ownership of fd.
func (o *Opener) New(fd int) *FD {
	return handle.NewWithOptions(fd, unix.Close, o.boxOptions())
}

// Empty returns a box with no descriptor that closes whatever it is given.
func (o *Opener) Empty() *FD {
	return o.New(Null)
}

// Open opens path with close-on-exec set.
func (o *Opener) Open(path string, flag int, perm uint32) (*FD, error) {
	b := o.Empty()
	err := b.Out(func(p *int) error {
		fd, err := unix.Open(path, flag|unix.O_CLOEXEC, perm)
		if err != nil {
			return err
		}
		*p = fd
		return nil
	})
	if err != nil {
		b.Drop()
		return nil, opError("sysfd.Open", path, err)
	}
	return b, nil
}

// Pipe returns the read and write ends of a new pipe.
func (o *Opener) Pipe() (r, w *FD, err error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, nil, opError("sysfd.Pipe", "pipe", err)
	}
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])
	return o.New(fds[0]), o.New(fds[1]), nil
}

// Dup returns a new box owning a duplicate of b's descriptor. Unlike Clone,
// the two boxes close independent descriptors.
func (o *Opener) Dup(b *FD) (*FD, error) {
	if !b.Valid() {
		return nil, opError("sysfd.Dup", "invalid descriptor", unix.EBADF)
	}
	fd, err := unix.Dup(b.Get())
	runtime.KeepAlive(b)
	if err != nil {
		return nil, opError("sysfd.Dup", strconv.Itoa(b.Get()), err)
	}
	unix.CloseOnExec(fd)
	return o.New(fd), nil
}

// New takes ownership of fd using the default options.
func New(fd int) *FD {
	return std.New(fd)
}

// Empty returns an empty box using the default options.
func Empty() *FD {
	return std.Empty()
}

// Open opens path using the default options.
func Open(path string, flag int, perm uint32) (*FD, error) {
	return std.Open(path, flag, perm)
}

// Pipe creates a pipe using the default options.
func Pipe() (r, w *FD, err error) {
	return std.Pipe()
}

// Dup duplicates b's descriptor using the default options.
func Dup(b *FD) (*FD, error) {
	return std.Dup(b)
}
