package taskspec

import (
    "encoding/binary"
    "errors"
    "fmt"
    "math"

    "github.com/rohan-flutterint/rayAI/pkg/ident"
)

// Construction-contract errors. A builder that has reported one is poisoned
// and must not be used further.
var (
    ErrTooManyArgs    = errors.New("taskspec: all argument slots already filled")
    ErrValueOverflow  = errors.New("taskspec: by-value bytes exceed declared budget")
    ErrIncomplete     = errors.New("taskspec: not all argument slots filled")
    ErrValueShortfall = errors.New("taskspec: by-value bytes fall short of declared budget")
    ErrFinished       = errors.New("taskspec: builder already finished")
)

// Builder incrementally constructs a specification into a single allocation.
// All counts are fixed at Start; slots are filled strictly in index order.
// The builder is exclusively owned by one constructing caller; it is not safe
// for concurrent use.
type Builder struct {
    buf []byte

    numArgs       int
    numReturns    int
    argsValueSize int

    filled  int // argument slots written so far
    valUsed int // bytes consumed from the value region
    done    bool
}

// Start allocates the whole region for a specification with the given shape
// and returns a builder over it. The region never grows: numArgs, numReturns
// and argsValueSize are final.
func Start(parent ident.TaskID, parentCounter uint64, fn ident.FunctionID, numArgs, numReturns, argsValueSize int) (*Builder, error) {
    if numArgs < 0 || numReturns < 0 || argsValueSize < 0 {
        return nil, fmt.Errorf("taskspec: negative shape (%d args, %d returns, %d value bytes)", numArgs, numReturns, argsValueSize)
    }
    if int64(numArgs) > math.MaxUint32 || int64(numReturns) > math.MaxUint32 || int64(argsValueSize) > math.MaxUint32 {
        return nil, fmt.Errorf("taskspec: shape exceeds u32 field width")
    }
    buf := make([]byte, totalSize(numArgs, numReturns, argsValueSize))
    copy(buf[offParentTask:], parent[:])
    binary.LittleEndian.PutUint64(buf[offParentCounter:], parentCounter)
    copy(buf[offFunction:], fn[:])
    // TaskID stays zero until Finish
    binary.LittleEndian.PutUint32(buf[offNumArgs:], uint32(numArgs))
    binary.LittleEndian.PutUint32(buf[offNumReturns:], uint32(numReturns))
    binary.LittleEndian.PutUint32(buf[offValueSize:], uint32(argsValueSize))
    return &Builder{
        buf:           buf,
        numArgs:       numArgs,
        numReturns:    numReturns,
        argsValueSize: argsValueSize,
    }, nil
}

// argEntry returns the byte range of descriptor slot i.
func (b *Builder) argEntry(i int) []byte {
    off := headerSize + i*argEntrySize
    return b.buf[off : off+argEntrySize]
}

// AddRef fills the next argument slot with a by-reference argument. It
// returns the number of slots that were filled before this call.
func (b *Builder) AddRef(obj ident.ObjectID) (int, error) {
    if b.done {
        return 0, ErrFinished
    }
    if b.filled >= b.numArgs {
        return 0, fmt.Errorf("%w (%d)", ErrTooManyArgs, b.numArgs)
    }
    e := b.argEntry(b.filled)
    e[argOffTag] = byte(ArgByRef)
    copy(e[argOffRef:], obj[:])
    n := b.filled
    b.filled++
    return n, nil
}

// AddVal fills the next argument slot with a by-value argument, copying the
// bytes into the value region. It returns the number of slots that were
// filled before this call.
func (b *Builder) AddVal(val []byte) (int, error) {
    if b.done {
        return 0, ErrFinished
    }
    if b.filled >= b.numArgs {
        return 0, fmt.Errorf("%w (%d)", ErrTooManyArgs, b.numArgs)
    }
    if b.valUsed+len(val) > b.argsValueSize {
        return 0, fmt.Errorf("%w: %d used + %d new > %d declared",
            ErrValueOverflow, b.valUsed, len(val), b.argsValueSize)
    }
    e := b.argEntry(b.filled)
    e[argOffTag] = byte(ArgByVal)
    binary.LittleEndian.PutUint32(e[argOffValOff:], uint32(b.valUsed))
    binary.LittleEndian.PutUint32(e[argOffValLen:], uint32(len(val)))
    copy(b.buf[headerSize+b.numArgs*argEntrySize+b.valUsed:], val)
    b.valUsed += len(val)
    n := b.filled
    b.filled++
    return n, nil
}

// Finish computes the task id and return ids, freezes the region and returns
// the immutable specification. The builder is spent afterwards. It fails if
// any argument slot is unfilled or the by-value bytes written do not match
// the declared budget.
func (b *Builder) Finish() (*Spec, error) {
    if b.done {
        return nil, ErrFinished
    }
    if b.filled != b.numArgs {
        return nil, fmt.Errorf("%w: %d of %d", ErrIncomplete, b.filled, b.numArgs)
    }
    if b.valUsed != b.argsValueSize {
        return nil, fmt.Errorf("%w: wrote %d of %d", ErrValueShortfall, b.valUsed, b.argsValueSize)
    }

    // Task id: digest over function, provenance and every argument in index
    // order. By-ref arguments contribute their object id, by-val arguments
    // their raw bytes; the tag byte disambiguates the two.
    d := ident.NewDigest()
    d.Field(b.buf[offFunction : offFunction+ident.Size])
    d.Field(b.buf[offParentTask : offParentTask+ident.Size])
    d.Uint64(binary.LittleEndian.Uint64(b.buf[offParentCounter:]))
    valStart := headerSize + b.numArgs*argEntrySize
    for i := 0; i < b.numArgs; i++ {
        e := b.argEntry(i)
        d.Byte(e[argOffTag])
        if ArgType(e[argOffTag]) == ArgByRef {
            d.Field(e[argOffRef : argOffRef+ident.Size])
        } else {
            off := int(binary.LittleEndian.Uint32(e[argOffValOff:]))
            n := int(binary.LittleEndian.Uint32(e[argOffValLen:]))
            d.Field(b.buf[valStart+off : valStart+off+n])
        }
    }
    taskID := d.Sum()
    copy(b.buf[offTaskID:], taskID[:])

    // Return ids derive from (task id, index): any holder of the task id can
    // recompute them without coordination.
    retStart := valStart + b.argsValueSize
    for i := 0; i < b.numReturns; i++ {
        rid := deriveReturnID(ident.TaskID(taskID), i)
        copy(b.buf[retStart+i*ident.Size:], rid[:])
    }

    spec := &Spec{buf: b.buf, valStart: valStart, retStart: retStart}
    b.buf = nil
    b.done = true
    return spec, nil
}

// deriveReturnID computes the object id of return slot i of a task.
func deriveReturnID(task ident.TaskID, i int) ident.ObjectID {
    d := ident.NewDigest()
    d.ID(ident.UniqueID(task))
    d.Uint64(uint64(i))
    return ident.ObjectID(d.Sum())
}
