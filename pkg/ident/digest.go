package ident

import (
    "crypto/sha256"
    "encoding/binary"
    "hash"
)

// Digest accumulates an ordered sequence of fields and produces a fixed-width
// identifier. The underlying hash is SHA-256 truncated to Size bytes; every
// field is framed with a little-endian u64 length before its bytes, so
// adjacent fields can never be confused. Both choices are part of the wire
// contract: all participants must derive identical ids from identical inputs.
type Digest struct {
    h hash.Hash
}

// NewDigest returns an empty digest.
func NewDigest() *Digest { return &Digest{h: sha256.New()} }

// Field appends one length-framed byte string.
func (d *Digest) Field(b []byte) {
    var n [8]byte
    binary.LittleEndian.PutUint64(n[:], uint64(len(b)))
    d.h.Write(n[:])
    d.h.Write(b)
}

// Uint64 appends a little-endian u64 as a field.
func (d *Digest) Uint64(v uint64) {
    var b [8]byte
    binary.LittleEndian.PutUint64(b[:], v)
    d.Field(b[:])
}

// Byte appends a single byte as a field.
func (d *Digest) Byte(v byte) { d.Field([]byte{v}) }

// ID appends an identifier as a field.
func (d *Digest) ID(id UniqueID) { d.Field(id[:]) }

// Sum returns the truncated digest of everything appended so far.
func (d *Digest) Sum() UniqueID {
    var id UniqueID
    copy(id[:], d.h.Sum(nil))
    return id
}
