// Package ident defines the fixed-width identifiers shared by all components:
// functions, tasks, task instances, nodes and objects. Identifiers are opaque
// byte values compared byte-wise; ordering is not defined.
package ident

import (
    "crypto/rand"
    "encoding/hex"
    "fmt"
    "io"
)

// Size is the identifier width in bytes. It is part of the wire contract:
// every participant must agree on it bit-for-bit.
const Size = 20

// UniqueID is the base identifier value. The zero value is the nil id.
type UniqueID [Size]byte

// Distinct kinds of identifiers. Keeping them as separate named types means
// ids of different kinds cannot be compared without an explicit conversion.
type (
    // FunctionID names an invocable function.
    FunctionID UniqueID
    // TaskID is the deterministic identity of a task, derived from its
    // function, provenance and arguments.
    TaskID UniqueID
    // TaskIID identifies one execution attempt of a task. Multiple attempts
    // may share a TaskID but never a TaskIID.
    TaskIID UniqueID
    // NodeID identifies a cluster node.
    NodeID UniqueID
    // ObjectID identifies a value produced or consumed by tasks. Return ids
    // are object ids.
    ObjectID UniqueID
)

// Nil is the zero identifier.
var Nil UniqueID

// IsNil reports whether the id is the zero value.
func (id UniqueID) IsNil() bool { return id == Nil }

// String renders the id as lowercase hex.
func (id UniqueID) String() string { return hex.EncodeToString(id[:]) }

// MarshalText implements encoding.TextMarshaler (hex).
func (id UniqueID) MarshalText() ([]byte, error) {
    out := make([]byte, hex.EncodedLen(Size))
    hex.Encode(out, id[:])
    return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler (hex).
func (id *UniqueID) UnmarshalText(b []byte) error {
    if hex.DecodedLen(len(b)) != Size {
        return fmt.Errorf("ident: bad id length %d", len(b))
    }
    _, err := hex.Decode(id[:], b)
    return err
}

// FromHex parses a hex-encoded identifier.
func FromHex(s string) (UniqueID, error) {
    var id UniqueID
    err := id.UnmarshalText([]byte(s))
    return id, err
}

// Rand returns a fresh random identifier, suitable for task instance ids.
func Rand() (UniqueID, error) {
    var id UniqueID
    if _, err := io.ReadFull(rand.Reader, id[:]); err != nil {
        return Nil, err
    }
    return id, nil
}

func (id FunctionID) IsNil() bool    { return UniqueID(id).IsNil() }
func (id FunctionID) String() string { return UniqueID(id).String() }

func (id TaskID) IsNil() bool    { return UniqueID(id).IsNil() }
func (id TaskID) String() string { return UniqueID(id).String() }

func (id TaskIID) IsNil() bool                   { return UniqueID(id).IsNil() }
func (id TaskIID) String() string                { return UniqueID(id).String() }
func (id TaskIID) MarshalText() ([]byte, error)  { return UniqueID(id).MarshalText() }
func (id *TaskIID) UnmarshalText(b []byte) error { return (*UniqueID)(id).UnmarshalText(b) }

func (id NodeID) IsNil() bool                   { return UniqueID(id).IsNil() }
func (id NodeID) String() string                { return UniqueID(id).String() }
func (id NodeID) MarshalText() ([]byte, error)  { return UniqueID(id).MarshalText() }
func (id *NodeID) UnmarshalText(b []byte) error { return (*UniqueID)(id).UnmarshalText(b) }

func (id ObjectID) IsNil() bool    { return UniqueID(id).IsNil() }
func (id ObjectID) String() string { return UniqueID(id).String() }
