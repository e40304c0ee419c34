// Package engine runs WebAssembly modules on wazero with boxed lifetimes.
//
// The runtime, compiled modules and module instances are each held in a
// handle.Box, so they are closed exactly once when the last alias lets go:
//
//	WazeroEngine - owns the wazero runtime
//	Compiled     - a compiled module, reusable across instantiations
//	Module       - a running module instance
//
// Closing the engine closes every module the runtime still holds. Boxes of
// those modules stay valid objects but their Close becomes a no-op on the
// wazero side.
//
// # Example
//
//	eng := engine.NewWazeroEngine(ctx)
//	defer eng.Close(ctx)
//
//	compiled, err := eng.Compile(ctx, wasmBytes)
//	if err != nil {
//	    return err
//	}
//	defer compiled.Drop()
//
//	mod, err := eng.Instantiate(ctx, compiled, engine.InstanceConfig{Name: "guest"})
//	if err != nil {
//	    return err
//	}
//	defer mod.Drop()
package engine
