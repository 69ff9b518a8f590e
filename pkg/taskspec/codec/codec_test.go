package codec

import (
    "bytes"
    "testing"

    "github.com/rohan-flutterint/rayAI/pkg/ident"
    "github.com/rohan-flutterint/rayAI/pkg/taskspec"
)

func sampleUpdate() taskspec.Update {
    var node ident.NodeID
    for i := range node {
        node[i] = byte(i)
    }
    return taskspec.Update{State: taskspec.StateScheduled, Node: node}
}

func TestJSONUpdateRoundtrip(t *testing.T) {
    c := JSON()
    in := sampleUpdate()
    b, err := c.Marshal(in)
    if err != nil { t.Fatalf("marshal: %v", err) }
    var out taskspec.Update
    if err := c.Unmarshal(b, &out); err != nil { t.Fatalf("unmarshal: %v", err) }
    if out != in { t.Fatalf("roundtrip mismatch: %+v vs %+v", out, in) }
}

func TestCBORUpdateRoundtrip(t *testing.T) {
    c, err := CBOR()
    if err != nil { t.Fatalf("new cbor: %v", err) }
    in := sampleUpdate()
    b, err := c.Marshal(in)
    if err != nil { t.Fatalf("marshal: %v", err) }
    var out taskspec.Update
    if err := c.Unmarshal(b, &out); err != nil { t.Fatalf("unmarshal: %v", err) }
    if out != in { t.Fatalf("roundtrip mismatch: %+v vs %+v", out, in) }
}

func TestCBORDeterministic(t *testing.T) {
    c, err := CBOR()
    if err != nil { t.Fatalf("new cbor: %v", err) }
    in := sampleUpdate()
    b1, err := c.Marshal(in)
    if err != nil { t.Fatalf("marshal: %v", err) }
    b2, err := c.Marshal(in)
    if err != nil { t.Fatalf("marshal: %v", err) }
    if !bytes.Equal(b1, b2) {
        t.Fatal("canonical encoding differs between runs")
    }
}

func TestBodyFormatByte(t *testing.T) {
    r := NewRegistry()
    cb, err := CBOR()
    if err != nil { t.Fatalf("new cbor: %v", err) }
    r.Register(cb)

    in := sampleUpdate()
    for _, f := range []Format{FormatJSON, FormatCBOR} {
        payload, err := EncodeBody(r, f, in)
        if err != nil { t.Fatalf("%v encode: %v", f, err) }
        if Format(payload[0]) != f { t.Fatalf("format byte = %d", payload[0]) }
        var out taskspec.Update
        got, err := DecodeBody(r, payload, &out)
        if err != nil { t.Fatalf("%v decode: %v", f, err) }
        if got != f { t.Fatalf("decoded format = %v", got) }
        if out != in { t.Fatalf("%v roundtrip mismatch", f) }
    }
}

func TestBodyErrors(t *testing.T) {
    r := NewRegistry()
    if _, err := DecodeBody(r, nil, &struct{}{}); err == nil {
        t.Fatal("empty payload accepted")
    }
    if _, err := EncodeBody(r, Format(99), 1); err == nil {
        t.Fatal("unknown format accepted")
    }
}
