package taskspec

import "github.com/rohan-flutterint/rayAI/pkg/ident"

// Wire layout of a finished specification. All integer fields are
// little-endian; identifiers are raw ident.Size (20) byte values. This layout
// is the authoritative cross-process contract: a record is relocated by
// copying exactly Size() bytes.
//
// Fixed header (80 bytes):
//
//  0  ..19  ParentTaskID
//  20 ..27  ParentCounter u64
//  28 ..47  FunctionID
//  48 ..67  TaskID (zero until Finish)
//  68 ..71  NumArgs u32
//  72 ..75  NumReturns u32
//  76 ..79  ArgsValueSize u32
//
// Then, in order:
//
//  - argument descriptor table, NumArgs entries of 32 bytes each
//  - packed by-value payload bytes, ArgsValueSize total
//  - return-id table, NumReturns identifiers
//
// Argument descriptor entry (32 bytes):
//
//  +0       Tag u8 (ArgByRef or ArgByVal)
//  +1 ..3   reserved, zero
//  by-ref:  +4..23 ObjectID
//  by-val:  +4..7  value offset u32 (relative to value region start)
//           +8..11 value length u32
const (
    headerSize = 3*ident.Size + 8 + 3*4

    offParentTask    = 0
    offParentCounter = offParentTask + ident.Size
    offFunction      = offParentCounter + 8
    offTaskID        = offFunction + ident.Size
    offNumArgs       = offTaskID + ident.Size
    offNumReturns    = offNumArgs + 4
    offValueSize     = offNumReturns + 4

    argEntrySize  = 32
    argOffTag     = 0
    argOffRef     = 4
    argOffValOff  = 4
    argOffValLen  = 8
)

// ArgType tags how an argument is passed.
type ArgType uint8

const (
    // ArgByRef marks an argument carried as a reference to a remote object.
    ArgByRef ArgType = iota
    // ArgByVal marks an argument carried as inline bytes.
    ArgByVal
)

func (t ArgType) String() string {
    switch t {
    case ArgByRef:
        return "ref"
    case ArgByVal:
        return "val"
    default:
        return "unknown"
    }
}

// totalSize computes the full record size for the given counts.
func totalSize(numArgs, numReturns, argsValueSize int) int {
    return headerSize + numArgs*argEntrySize + argsValueSize + numReturns*ident.Size
}
