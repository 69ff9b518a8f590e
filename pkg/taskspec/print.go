package taskspec

import (
    "encoding/hex"
    "fmt"
    "io"
    "strings"
)

// Print writes a multi-line human-readable dump of the specification to w.
// Diagnostic only; the wire contract is the byte layout, never this text.
func (s *Spec) Print(w io.Writer) error {
    if _, err := fmt.Fprintf(w, "task %s\n", s.TaskID()); err != nil {
        return err
    }
    fmt.Fprintf(w, "  function %s\n", s.Function())
    fmt.Fprintf(w, "  parent   %s #%d\n", s.ParentTaskID(), s.ParentCounter())
    fmt.Fprintf(w, "  args     %d (%d value bytes)\n", s.NumArgs(), s.retStart-s.valStart)
    for i := 0; i < s.NumArgs(); i++ {
        switch s.ArgType(i) {
        case ArgByRef:
            fmt.Fprintf(w, "    [%d] ref %s\n", i, s.ArgRef(i))
        case ArgByVal:
            v := s.ArgVal(i)
            fmt.Fprintf(w, "    [%d] val %d bytes %s\n", i, len(v), hex.EncodeToString(v))
        }
    }
    fmt.Fprintf(w, "  returns  %d\n", s.NumReturns())
    for i := 0; i < s.NumReturns(); i++ {
        fmt.Fprintf(w, "    [%d] %s\n", i, s.ReturnID(i))
    }
    return nil
}

func (s *Spec) String() string {
    var b strings.Builder
    _ = s.Print(&b)
    return b.String()
}
