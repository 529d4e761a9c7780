// Package resolve turns patch-description value and target syntax into a
// closed set of resolver variants, parsed once at load time and evaluated
// lazily against the current row/column/memory context at apply time.
package resolve
