// Package codegen emits precalculated functions as Go source.
//
// A Unit is one function: its table literal, its per-dimension bounds and, in
// panic mode, its stride tables, followed by the dispatch function under the
// public name. Units are assembled into a File, formatted with go/format and
// stamped with an xxhash fingerprint so that stale or hand-edited output can be
// detected:
//
//	u, err := codegen.GenerateBody(spec, scope, 0)
//	...
//	err = codegen.WriteFile(w, codegen.File{Package: "curves", Units: []*codegen.Unit{u}})
package codegen
