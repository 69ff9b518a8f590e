// Package taskspec implements the binary task-specification format used to
// describe units of remote computation: the function to invoke, its arguments
// (inline bytes or references to remote objects) and the identities of the
// values it will produce.
//
// A specification is a single contiguous, relocatable block of memory. All
// internal references are relative offsets, so a transport can move the record
// between processes and machines with a raw copy of exactly Size() bytes and
// the receiver can read it back with no decode step. Task identity is a
// deterministic digest of the constructor inputs, so identical submissions
// collapse to identical ids regardless of where they are built.
//
// The package also carries the task-instance record that tracks one scheduling
// attempt of a specification, the scheduling-state flags, and the update delta
// used to propagate state changes.
package taskspec
