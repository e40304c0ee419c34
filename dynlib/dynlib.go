//go:build darwin || linux

// Package dynlib boxes shared libraries loaded with dlopen.
//
// A Library is released with dlclose when its last alias is dropped. Symbols
// and bound functions looked up through a Library are only valid while some
// alias keeps it loaded:
//
//	lib, err := dynlib.Open("libc.so.6", dynlib.ModeNow)
//	if err != nil {
//	    return err
//	}
//	defer lib.Drop()
//
//	var getpid func() int32
//	if err := dynlib.Func(lib, &getpid, "getpid"); err != nil {
//	    return err
//	}
package dynlib

import (
	"github.com/ebitengine/purego"
	"github.com/wippyai/handlebox/errors"
	"github.com/wippyai/handlebox/handle"
	"go.uber.org/zap"
)

// Mode selects dlopen binding behavior.
type Mode int

const (
	ModeLazy   Mode = purego.RTLD_LAZY
	ModeNow    Mode = purego.RTLD_NOW
	ModeGlobal Mode = purego.RTLD_GLOBAL
	ModeLocal  Mode = purego.RTLD_LOCAL
)

// Library is a boxed dlopen handle. The null handle is 0.
type Library = handle.Box[uintptr, error]

// Options configures loaded libraries.
type Options struct {
	Observer handle.Observer
}

// Open loads the shared library at path.
func Open(path string, mode Mode) (*Library, error) {
	return OpenWithOptions(path, mode, Options{})
}

// OpenWithOptions loads the shared library at path with the given options.
func OpenWithOptions(path string, mode Mode, opts Options) (*Library, error) {
	lib := handle.NewWithOptions[uintptr, error](0, purego.Dlclose, handle.Options[uintptr]{
		Observer: opts.Observer,
	})
	err := lib.Out(func(p *uintptr) error {
		h, err := purego.Dlopen(path, int(mode))
		if err != nil {
			return err
		}
		*p = h
		return nil
	})
	if err != nil {
		lib.Drop()
		handle.Logger().Debug("dlopen failed", zap.String("path", path), zap.Error(err))
		return nil, errors.New(errors.PhaseLoad, errors.KindOpenFailed).
			Op("dynlib.Open").
			Detail("%s", path).
			Cause(err).
			Build()
	}
	handle.Logger().Debug("library loaded", zap.String("path", path), zap.Uintptr("handle", lib.Get()))
	return lib, nil
}

// Lookup resolves a symbol address in lib.
func Lookup(lib *Library, name string) (uintptr, error) {
	if !lib.Valid() {
		return 0, errors.Closed(errors.PhaseLookup, "dynlib.Lookup")
	}
	sym, err := purego.Dlsym(lib.Get(), name)
	if err != nil {
		return 0, errors.New(errors.PhaseLookup, errors.KindSymbolMissing).
			Op("dynlib.Lookup").
			Handle(lib.Get()).
			Detail("%s", name).
			Cause(err).
			Build()
	}
	return sym, nil
}

// Func binds the symbol name in lib to the function pointed to by fptr.
func Func(lib *Library, fptr any, name string) error {
	sym, err := Lookup(lib, name)
	if err != nil {
		return err
	}
	purego.RegisterFunc(fptr, sym)
	return nil
}
