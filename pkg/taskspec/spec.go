package taskspec

import (
    "encoding/binary"
    "fmt"
    "io"

    "github.com/rohan-flutterint/rayAI/pkg/ident"
)

// Spec is a read-only view over one finished, contiguous specification
// record. The region is immutable after Finish, so any number of readers may
// use a Spec concurrently without synchronization. Accessor index bounds are
// the caller's contract: out-of-range or wrong-kind access panics.
type Spec struct {
    buf      []byte
    valStart int // absolute offset of the value region
    retStart int // absolute offset of the return-id table
}

// FromBytes rebuilds a view over a raw record, typically after the bytes were
// relocated by copy from another process. The buffer is validated for shape:
// its length must equal exactly the size implied by the header counts, and
// every descriptor must be well formed. The Spec aliases buf; the caller must
// not mutate it afterwards.
func FromBytes(buf []byte) (*Spec, error) {
    if len(buf) < headerSize {
        return nil, fmt.Errorf("taskspec: short record: %d bytes", len(buf))
    }
    numArgs := int(binary.LittleEndian.Uint32(buf[offNumArgs:]))
    numReturns := int(binary.LittleEndian.Uint32(buf[offNumReturns:]))
    valSize := int(binary.LittleEndian.Uint32(buf[offValueSize:]))
    want := totalSize(numArgs, numReturns, valSize)
    if len(buf) != want {
        return nil, fmt.Errorf("taskspec: record size %d, header implies %d", len(buf), want)
    }
    valStart := headerSize + numArgs*argEntrySize
    for i := 0; i < numArgs; i++ {
        e := buf[headerSize+i*argEntrySize:]
        switch ArgType(e[argOffTag]) {
        case ArgByRef:
        case ArgByVal:
            off := int(binary.LittleEndian.Uint32(e[argOffValOff:]))
            n := int(binary.LittleEndian.Uint32(e[argOffValLen:]))
            if off+n > valSize {
                return nil, fmt.Errorf("taskspec: arg %d value [%d:%d) outside value region of %d", i, off, off+n, valSize)
            }
        default:
            return nil, fmt.Errorf("taskspec: arg %d has unknown tag %d", i, e[argOffTag])
        }
    }
    return &Spec{buf: buf, valStart: valStart, retStart: valStart + valSize}, nil
}

// Size is the exact byte length of the record. Copying Size() bytes relocates
// the specification intact; copying fewer or more corrupts it.
func (s *Spec) Size() int { return len(s.buf) }

// Bytes exposes the raw record for an exclusive handoff to a transport. The
// returned slice aliases the spec; the receiver must treat it as read-only.
func (s *Spec) Bytes() []byte { return s.buf }

// Clone returns an independent copy of the record. Embedding or retaining a
// spec beyond a handoff goes through Clone so no two owners alias one buffer.
func (s *Spec) Clone() *Spec {
    buf := append([]byte(nil), s.buf...)
    return &Spec{buf: buf, valStart: s.valStart, retStart: s.retStart}
}

// ParentTaskID is the id of the task that submitted this one.
func (s *Spec) ParentTaskID() ident.TaskID {
    var id ident.TaskID
    copy(id[:], s.buf[offParentTask:])
    return id
}

// ParentCounter is this task's sequence number among its parent's submissions.
func (s *Spec) ParentCounter() uint64 {
    return binary.LittleEndian.Uint64(s.buf[offParentCounter:])
}

// Function is the id of the function to execute.
func (s *Spec) Function() ident.FunctionID {
    var id ident.FunctionID
    copy(id[:], s.buf[offFunction:])
    return id
}

// TaskID is the deterministic identity computed at Finish.
func (s *Spec) TaskID() ident.TaskID {
    var id ident.TaskID
    copy(id[:], s.buf[offTaskID:])
    return id
}

// NumArgs is the argument count.
func (s *Spec) NumArgs() int {
    return int(binary.LittleEndian.Uint32(s.buf[offNumArgs:]))
}

// NumReturns is the return-value count.
func (s *Spec) NumReturns() int {
    return int(binary.LittleEndian.Uint32(s.buf[offNumReturns:]))
}

func (s *Spec) argEntry(i int) []byte {
    if i < 0 || i >= s.NumArgs() {
        panic(fmt.Sprintf("taskspec: arg index %d out of range [0,%d)", i, s.NumArgs()))
    }
    off := headerSize + i*argEntrySize
    return s.buf[off : off+argEntrySize]
}

// ArgType reports how argument i is passed.
func (s *Spec) ArgType(i int) ArgType { return ArgType(s.argEntry(i)[argOffTag]) }

// ArgRef returns the object id of by-reference argument i. It panics if the
// argument is by-value.
func (s *Spec) ArgRef(i int) ident.ObjectID {
    e := s.argEntry(i)
    if ArgType(e[argOffTag]) != ArgByRef {
        panic(fmt.Sprintf("taskspec: arg %d is by-value, not by-reference", i))
    }
    var id ident.ObjectID
    copy(id[:], e[argOffRef:])
    return id
}

// ArgVal returns the inline bytes of by-value argument i. It panics if the
// argument is by-reference. The slice aliases the record and is read-only.
func (s *Spec) ArgVal(i int) []byte {
    e := s.argEntry(i)
    if ArgType(e[argOffTag]) != ArgByVal {
        panic(fmt.Sprintf("taskspec: arg %d is by-reference, not by-value", i))
    }
    off := int(binary.LittleEndian.Uint32(e[argOffValOff:]))
    n := int(binary.LittleEndian.Uint32(e[argOffValLen:]))
    return s.buf[s.valStart+off : s.valStart+off+n]
}

// ArgLength returns the byte length of by-value argument i.
func (s *Spec) ArgLength(i int) int {
    e := s.argEntry(i)
    if ArgType(e[argOffTag]) != ArgByVal {
        panic(fmt.Sprintf("taskspec: arg %d is by-reference, not by-value", i))
    }
    return int(binary.LittleEndian.Uint32(e[argOffValLen:]))
}

// ReturnID returns the object id of return slot i.
func (s *Spec) ReturnID(i int) ident.ObjectID {
    if i < 0 || i >= s.NumReturns() {
        panic(fmt.Sprintf("taskspec: return index %d out of range [0,%d)", i, s.NumReturns()))
    }
    var id ident.ObjectID
    copy(id[:], s.buf[s.retStart+i*ident.Size:])
    return id
}

// ReturnIDFor recomputes the object id of return slot i of a task from its
// task id alone, without access to the specification bytes.
func ReturnIDFor(task ident.TaskID, i int) ident.ObjectID { return deriveReturnID(task, i) }

// WriteTo writes the record's exact Size() bytes to w.
func (s *Spec) WriteTo(w io.Writer) (int64, error) {
    n, err := w.Write(s.buf)
    return int64(n), err
}

// ReadSpec reads one record from r: the fixed header first, then the
// remainder implied by the header counts. The result owns its buffer.
func ReadSpec(r io.Reader) (*Spec, error) {
    head := make([]byte, headerSize)
    if _, err := io.ReadFull(r, head); err != nil {
        return nil, err
    }
    numArgs := int(binary.LittleEndian.Uint32(head[offNumArgs:]))
    numReturns := int(binary.LittleEndian.Uint32(head[offNumReturns:]))
    valSize := int(binary.LittleEndian.Uint32(head[offValueSize:]))
    want := totalSize(numArgs, numReturns, valSize)
    if want > 1<<31 { // guard against absurd sizes
        return nil, fmt.Errorf("taskspec: record size %d too large", want)
    }
    buf := make([]byte, want)
    copy(buf, head)
    if _, err := io.ReadFull(r, buf[headerSize:]); err != nil {
        return nil, err
    }
    return FromBytes(buf)
}
