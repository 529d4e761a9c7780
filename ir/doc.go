// Package ir holds the in-memory representations of the resource kinds the
// patch engine mutates: tabular data, tree data addressed by structural
// paths, sound-index tables, localized string tables and flat bytecode
// buffers. Decoding from and encoding to the on-disk container formats is
// the caller's concern; the engine only ever sees these types.
package ir
