// Package pipeline provides a driver for sequential pipelines of external
// command-line tools.
//
// A pipeline is a declarative, ordered list of stages. Each stage names the
// tool it wraps, a command template, and the artifact paths it consumes and
// produces; stages exchange data only through those conventionally named
// files. The pipeline validates the artifact hand-off before anything is
// launched, so a renamed output fails fast instead of silently breaking the
// next stage's input resolution.
//
// Execution is strictly sequential: each stage blocks until its child
// process exits. The first failure aborts the run and is propagated into a
// single aggregate result; there is no unconditional success report.
// Options observe the run through lifecycle hooks, which is where graph
// drawing, timing measures and the run journal plug in without touching tool
// invocation details.
package pipeline
