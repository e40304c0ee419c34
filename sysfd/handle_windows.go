//go:build windows

package sysfd

import (
	"runtime"

	"github.com/wippyai/handlebox/handle"
	"golang.org/x/sys/windows"
)

// Null is the handle value meaning "no handle".
const Null = windows.InvalidHandle

// FD is a boxed Windows HANDLE.
type FD = handle.Box[windows.Handle, error]

func (o *Opener) boxOptions() handle.Options[windows.Handle] {
	return handle.Options[windows.Handle]{
		Null:             Null,
		Observer:         o.opts.Observer,
		ReleaseOnCollect: o.opts.ReleaseOnCollect,
	}
}

// New takes ownership of h.
func (o *Opener) New(h windows.Handle) *FD {
	return handle.NewWithOptions(h, windows.CloseHandle, o.boxOptions())
}

// Empty returns a box with no handle that closes whatever it is given.
func (o *Opener) Empty() *FD {
	return o.New(Null)
}

// Open opens path with CreateFile. disposition is one of the
// windows.CREATE_*/OPEN_* constants.
func (o *Opener) Open(path string, access, disposition uint32) (*FD, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, opError("sysfd.Open", path, err)
	}
	h, err := windows.CreateFile(name, access, windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE, nil, disposition, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return nil, opError("sysfd.Open", path, err)
	}
	return o.New(h), nil
}

// Pipe returns the read and write ends of an anonymous pipe.
func (o *Opener) Pipe() (r, w *FD, err error) {
	var rh, wh windows.Handle
	if err := windows.CreatePipe(&rh, &wh, nil, 0); err != nil {
		return nil, nil, opError("sysfd.Pipe", "pipe", err)
	}
	return o.New(rh), o.New(wh), nil
}

// Dup returns a new box owning a duplicate of b's handle.
func (o *Opener) Dup(b *FD) (*FD, error) {
	proc := windows.CurrentProcess()
	dup := o.Empty()
	err := dup.Out(func(p *windows.Handle) error {
		return windows.DuplicateHandle(proc, b.Get(), proc, p, 0, false, windows.DUPLICATE_SAME_ACCESS)
	})
	runtime.KeepAlive(b)
	if err != nil {
		dup.Drop()
		return nil, opError("sysfd.Dup", "handle", err)
	}
	return dup, nil
}

// CreateEvent returns a manual-reset event object.
func (o *Opener) CreateEvent(name string) (*FD, error) {
	var namePtr *uint16
	if name != "" {
		p, err := windows.UTF16PtrFromString(name)
		if err != nil {
			return nil, opError("sysfd.CreateEvent", name, err)
		}
		namePtr = p
	}
	h, err := windows.CreateEvent(nil, 1, 0, namePtr)
	if err != nil {
		return nil, opError("sysfd.CreateEvent", name, err)
	}
	return o.New(h), nil
}

// New takes ownership of h using the default options.
func New(h windows.Handle) *FD {
	return std.New(h)
}

// Empty returns an empty box using the default options.
func Empty() *FD {
	return std.Empty()
}

// Open opens path using the default options.
func Open(path string, access, disposition uint32) (*FD, error) {
	return std.Open(path, access, disposition)
}

// Pipe creates a pipe using the default options.
func Pipe() (r, w *FD, err error) {
	return std.Pipe()
}

// Dup duplicates b's handle using the default options.
func Dup(b *FD) (*FD, error) {
	return std.Dup(b)
}

// CreateEvent creates an event using the default options.
func CreateEvent(name string) (*FD, error) {
	return std.CreateEvent(name)
}
