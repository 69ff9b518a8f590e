// rayai-dump reads raw specification frames (as produced by rayai-genspec or
// received off the wire) and prints them in human-readable form.
package main

import (
    "flag"
    "fmt"
    "log"
    "os"

    "github.com/rohan-flutterint/rayAI/pkg/taskspec"
)

func main() {
    flag.Parse()
    if flag.NArg() == 0 {
        log.Fatal("usage: rayai-dump <spec.bin> [...]")
    }
    for _, path := range flag.Args() {
        raw, err := os.ReadFile(path)
        if err != nil { log.Fatal(err) }
        spec, err := taskspec.FromBytes(raw)
        if err != nil {
            log.Fatalf("%s: %v", path, err)
        }
        fmt.Printf("%s (%d bytes)\n", path, spec.Size())
        if err := spec.Print(os.Stdout); err != nil { log.Fatal(err) }
        fmt.Println()
    }
}
