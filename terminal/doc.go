// Package terminal is the output and input edge of the rain engine.
//
// Features:
//   - Cell and change types shared with the render buffer
//   - True color (24-bit) and 256-color palette support
//   - Interactive screen backed by tcell with key and resize events
//   - Stream writer that emits cursor-coalesced ANSI for pipes and benchmarks
//   - Clean terminal restoration on exit/panic
//
// Callers hand a lazily evaluated sequence of changed cells to Screen.Draw;
// nothing in this package keeps a copy of the frame beyond what the backend needs.
package terminal
