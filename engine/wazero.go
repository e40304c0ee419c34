package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/experimental"
	"go.uber.org/zap"

	"github.com/wippyai/handlebox/errors"
	"github.com/wippyai/handlebox/handle"
	"github.com/wippyai/handlebox/release"
)

// Runtime is a boxed wazero runtime.
type Runtime = handle.Box[wazero.Runtime, error]

// Compiled is a boxed compiled module.
type Compiled = handle.Box[wazero.CompiledModule, error]

// Module is a boxed module instance.
type Module = handle.Box[api.Module, error]

// WazeroEngine owns a wazero runtime and boxes what it produces.
type WazeroEngine struct {
	runtime  *Runtime
	observer handle.Observer
	closeCtx context.Context
}

// Config holds configuration for engine creation
type Config struct {
	// Observer receives lifecycle events for the runtime and every
	// compiled module and instance the engine produces.
	Observer handle.Observer

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// EnableThreads enables the WebAssembly threads proposal (experimental).
	EnableThreads bool
}

// InstanceConfig holds configuration for module instantiation
type InstanceConfig struct {
	// Module overrides the base module configuration. Nil means
	// wazero.NewModuleConfig().
	Module wazero.ModuleConfig
	Name   string
}

// NewWazeroEngine creates a new wazero-based engine
func NewWazeroEngine(ctx context.Context) *WazeroEngine {
	return NewWazeroEngineWithConfig(ctx, nil)
}

// NewWazeroEngineWithConfig creates a new engine with custom configuration.
// Releases run with a context derived from ctx that is never canceled.
func NewWazeroEngineWithConfig(ctx context.Context, cfg *Config) *WazeroEngine {
	runtimeCfg := wazero.NewRuntimeConfig()

	var observer handle.Observer
	if cfg != nil {
		observer = cfg.Observer
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.EnableThreads {
			runtimeCfg = runtimeCfg.WithCoreFeatures(api.CoreFeaturesV2 | experimental.CoreFeaturesThreads)
		}
	}

	closeCtx := context.WithoutCancel(ctx)
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	boxed := handle.NewWithOptions(rt, release.Bind(wazero.Runtime.Close, closeCtx),
		handle.Options[wazero.Runtime]{Observer: observer})
	return &WazeroEngine{
		runtime:  boxed,
		observer: observer,
		closeCtx: closeCtx,
	}
}

// Runtime returns the underlying wazero runtime, or nil once the engine is closed.
func (e *WazeroEngine) Runtime() wazero.Runtime {
	return e.runtime.Get()
}

func (e *WazeroEngine) live(op string) (wazero.Runtime, error) {
	rt := e.runtime.Get()
	if rt == nil {
		return nil, errors.Closed(errors.PhaseLoad, op)
	}
	return rt, nil
}

// Compile compiles wasmBytes into a reusable module.
func (e *WazeroEngine) Compile(ctx context.Context, wasmBytes []byte) (*Compiled, error) {
	rt, err := e.live("engine.Compile")
	if err != nil {
		return nil, err
	}
	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "compile failed")
	}
	return handle.NewWithOptions(compiled, release.Bind(wazero.CompiledModule.Close, e.closeCtx),
		handle.Options[wazero.CompiledModule]{Observer: e.observer}), nil
}

// Instantiate creates a module instance from compiled. The instance is closed
// when its last alias is dropped; compiled may be dropped independently.
func (e *WazeroEngine) Instantiate(ctx context.Context, compiled *Compiled, cfg InstanceConfig) (*Module, error) {
	rt, err := e.live("engine.Instantiate")
	if err != nil {
		return nil, err
	}
	if !compiled.Valid() {
		return nil, errors.InvalidHandle(errors.PhaseLoad, "engine.Instantiate", nil)
	}

	modCfg := cfg.Module
	if modCfg == nil {
		modCfg = wazero.NewModuleConfig()
	}
	if cfg.Name != "" {
		modCfg = modCfg.WithName(cfg.Name)
	}

	mod, err := rt.InstantiateModule(ctx, compiled.Get(), modCfg)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindOpenFailed).
			Op("engine.Instantiate").
			Detail("module %q", cfg.Name).
			Cause(err).
			Build()
	}
	Logger().Debug("module instantiated", zap.String("name", mod.Name()))
	return handle.NewWithOptions(mod, release.Bind(api.Module.Close, e.closeCtx),
		handle.Options[api.Module]{Observer: e.observer}), nil
}

// InstantiateBinary compiles and instantiates wasmBytes in one step.
func (e *WazeroEngine) InstantiateBinary(ctx context.Context, wasmBytes []byte, cfg InstanceConfig) (*Module, error) {
	compiled, err := e.Compile(ctx, wasmBytes)
	if err != nil {
		return nil, err
	}
	defer compiled.Drop()
	return e.Instantiate(ctx, compiled, cfg)
}

// Call invokes the exported function name on mod.
func Call(ctx context.Context, mod *Module, name string, params ...uint64) ([]uint64, error) {
	m := mod.Get()
	if m == nil || m.IsClosed() {
		return nil, errors.Closed(errors.PhaseLookup, "engine.Call")
	}
	fn := m.ExportedFunction(name)
	if fn == nil {
		return nil, errors.New(errors.PhaseLookup, errors.KindSymbolMissing).
			Op("engine.Call").
			Detail("export %q not found in %q", name, m.Name()).
			Build()
	}
	return fn.Call(ctx, params...)
}

// Close closes the runtime and every module it still holds. Boxes produced by
// the engine remain safe to drop afterwards.
func (e *WazeroEngine) Close() error {
	return e.runtime.Close()
}
