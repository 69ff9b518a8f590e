// rayai-genspec builds a few representative task specifications and writes
// their raw frames to disk, for feeding other tools and cross-process reads.
package main

import (
    "encoding/hex"
    "flag"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "strings"

    "github.com/rohan-flutterint/rayAI/pkg/ident"
    "github.com/rohan-flutterint/rayAI/pkg/taskspec"
)

func main() {
    outDir := flag.String("out", "testdata/spec", "output directory for binary spec frames")
    flag.Parse()
    if err := os.MkdirAll(*outDir, 0o755); err != nil { log.Fatal(err) }

    fn := fillID(0x01)
    obj := fillID(0xA0)

    // 1) No-parent spec: one ref arg, one val arg, one return
    b, err := taskspec.Start(ident.TaskID{}, 0, ident.FunctionID(fn), 2, 1, 3)
    if err != nil { log.Fatal(err) }
    mustAdd(b.AddRef(ident.ObjectID(obj)))
    mustAdd(b.AddVal([]byte{1, 2, 3}))
    spec := mustFinish(b)
    writeOut(*outDir, "spec_basic.bin", spec.Bytes())
    fmt.Println("task id:", spec.TaskID())

    // 2) Child spec submitted by the first one, all by-value args
    b2, err := taskspec.Start(spec.TaskID(), 4, ident.FunctionID(fillID(0x02)), 3, 2, 12)
    if err != nil { log.Fatal(err) }
    for i := 0; i < 3; i++ {
        mustAdd(b2.AddVal([]byte{byte(i), byte(i), byte(i), byte(i)}))
    }
    spec2 := mustFinish(b2)
    writeOut(*outDir, "spec_child.bin", spec2.Bytes())
    fmt.Println("task id:", spec2.TaskID())

    // 3) Empty spec: no args, no returns
    b3, err := taskspec.Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0x03)), 0, 0, 0)
    if err != nil { log.Fatal(err) }
    spec3 := mustFinish(b3)
    writeOut(*outDir, "spec_empty.bin", spec3.Bytes())

    fmt.Println("Generated spec frames in", *outDir)
}

func fillID(v byte) ident.UniqueID {
    var id ident.UniqueID
    for i := range id {
        id[i] = v
    }
    return id
}

func mustAdd(_ int, err error) {
    if err != nil { log.Fatal(err) }
}

func mustFinish(b *taskspec.Builder) *taskspec.Spec {
    s, err := b.Finish()
    if err != nil { log.Fatal(err) }
    return s
}

func writeOut(dir, name string, b []byte) {
    p := filepath.Join(dir, name)
    if err := os.WriteFile(p, b, 0o644); err != nil { log.Fatal(err) }
    fmt.Printf("%-20s %5d bytes  head: %s\n", name, len(b), shortHex(b, 48))
}

func shortHex(b []byte, n int) string {
    if len(b) == 0 { return "" }
    if n > len(b) { n = len(b) }
    enc := hex.EncodeToString(b[:n])
    var out []string
    for i := 0; i < len(enc); i += 4 {
        j := i + 4
        if j > len(enc) { j = len(enc) }
        out = append(out, enc[i:j])
    }
    return strings.Join(out, " ")
}
