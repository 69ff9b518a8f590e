package taskspec

import (
    "errors"
    "testing"

    "github.com/rohan-flutterint/rayAI/pkg/ident"
)

func fillID(v byte) ident.UniqueID {
    var id ident.UniqueID
    for i := range id {
        id[i] = v
    }
    return id
}

// buildBasic constructs the reference spec: function F, no parent, one ref
// arg O1, one val arg [1 2 3], one return.
func buildBasic(t *testing.T) *Spec {
    t.Helper()
    b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 2, 1, 3)
    if err != nil { t.Fatalf("start: %v", err) }
    if n, err := b.AddRef(ident.ObjectID(fillID(0x01))); err != nil || n != 0 {
        t.Fatalf("add ref: n=%d err=%v", n, err)
    }
    if n, err := b.AddVal([]byte{1, 2, 3}); err != nil || n != 1 {
        t.Fatalf("add val: n=%d err=%v", n, err)
    }
    spec, err := b.Finish()
    if err != nil { t.Fatalf("finish: %v", err) }
    return spec
}

func TestConcreteScenario(t *testing.T) {
    spec := buildBasic(t)
    if spec.NumArgs() != 2 { t.Fatalf("num args = %d", spec.NumArgs()) }
    if spec.NumReturns() != 1 { t.Fatalf("num returns = %d", spec.NumReturns()) }
    if spec.ArgType(0) != ArgByRef { t.Fatalf("arg 0 type = %v", spec.ArgType(0)) }
    if spec.ArgRef(0) != ident.ObjectID(fillID(0x01)) {
        t.Fatalf("arg 0 ref = %s", spec.ArgRef(0))
    }
    if spec.ArgType(1) != ArgByVal { t.Fatalf("arg 1 type = %v", spec.ArgType(1)) }
    if got := spec.ArgVal(1); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
        t.Fatalf("arg 1 val = %v", got)
    }
    if spec.ArgLength(1) != 3 { t.Fatalf("arg 1 length = %d", spec.ArgLength(1)) }
    if spec.TaskID().IsNil() { t.Fatal("task id is zero") }
    if spec.Function() != ident.FunctionID(fillID(0xF1)) {
        t.Fatalf("function = %s", spec.Function())
    }

    again := buildBasic(t)
    if again.TaskID() != spec.TaskID() {
        t.Fatalf("rebuild changed task id: %s vs %s", again.TaskID(), spec.TaskID())
    }
}

func TestTaskIDSensitivity(t *testing.T) {
    base := buildBasic(t)

    build := func(mutate func(*Builder)) ident.TaskID {
        b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 2, 1, 3)
        if err != nil { t.Fatalf("start: %v", err) }
        mutate(b)
        spec, err := b.Finish()
        if err != nil { t.Fatalf("finish: %v", err) }
        return spec.TaskID()
    }

    // different ref id
    id := build(func(b *Builder) {
        b.AddRef(ident.ObjectID(fillID(0x02)))
        b.AddVal([]byte{1, 2, 3})
    })
    if id == base.TaskID() { t.Fatal("ref change kept task id") }

    // different value bytes
    id = build(func(b *Builder) {
        b.AddRef(ident.ObjectID(fillID(0x01)))
        b.AddVal([]byte{1, 2, 4})
    })
    if id == base.TaskID() { t.Fatal("value change kept task id") }

    // different parent counter
    b, err := Start(ident.TaskID{}, 1, ident.FunctionID(fillID(0xF1)), 2, 1, 3)
    if err != nil { t.Fatalf("start: %v", err) }
    b.AddRef(ident.ObjectID(fillID(0x01)))
    b.AddVal([]byte{1, 2, 3})
    spec, err := b.Finish()
    if err != nil { t.Fatalf("finish: %v", err) }
    if spec.TaskID() == base.TaskID() { t.Fatal("counter change kept task id") }
}

func TestArgOrderMatters(t *testing.T) {
    one := func(first, second byte) ident.TaskID {
        b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 2, 0, 0)
        if err != nil { t.Fatalf("start: %v", err) }
        b.AddRef(ident.ObjectID(fillID(first)))
        b.AddRef(ident.ObjectID(fillID(second)))
        spec, err := b.Finish()
        if err != nil { t.Fatalf("finish: %v", err) }
        return spec.TaskID()
    }
    if one(0x01, 0x02) == one(0x02, 0x01) {
        t.Fatal("argument order not reflected in task id")
    }
}

func TestSequentialFill(t *testing.T) {
    b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 3, 0, 2)
    if err != nil { t.Fatalf("start: %v", err) }
    for want := 0; want < 3; want++ {
        var n int
        if want == 1 {
            n, err = b.AddVal([]byte{9, 9})
        } else {
            n, err = b.AddRef(ident.ObjectID(fillID(byte(want))))
        }
        if err != nil { t.Fatalf("slot %d: %v", want, err) }
        if n != want { t.Fatalf("slot counter = %d, want %d", n, want) }
    }
    if _, err := b.AddRef(ident.ObjectID(fillID(0xFF))); !errors.Is(err, ErrTooManyArgs) {
        t.Fatalf("overfill err = %v", err)
    }
}

func TestValueBudgetOverflow(t *testing.T) {
    b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 2, 0, 4)
    if err != nil { t.Fatalf("start: %v", err) }
    if _, err := b.AddVal([]byte{1, 2, 3}); err != nil { t.Fatalf("first val: %v", err) }
    if _, err := b.AddVal([]byte{4, 5}); !errors.Is(err, ErrValueOverflow) {
        t.Fatalf("overflow err = %v", err)
    }
}

func TestFinishRequiresAllSlots(t *testing.T) {
    b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 2, 0, 0)
    if err != nil { t.Fatalf("start: %v", err) }
    b.AddRef(ident.ObjectID(fillID(0x01)))
    if _, err := b.Finish(); !errors.Is(err, ErrIncomplete) {
        t.Fatalf("early finish err = %v", err)
    }
}

func TestFinishRequiresFullValueBudget(t *testing.T) {
    b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 1, 0, 5)
    if err != nil { t.Fatalf("start: %v", err) }
    b.AddVal([]byte{1, 2, 3})
    if _, err := b.Finish(); !errors.Is(err, ErrValueShortfall) {
        t.Fatalf("shortfall err = %v", err)
    }
}

func TestFinishedBuilderIsSpent(t *testing.T) {
    b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 0, 0, 0)
    if err != nil { t.Fatalf("start: %v", err) }
    if _, err := b.Finish(); err != nil { t.Fatalf("finish: %v", err) }
    if _, err := b.Finish(); !errors.Is(err, ErrFinished) {
        t.Fatalf("second finish err = %v", err)
    }
    if _, err := b.AddRef(ident.ObjectID(fillID(0x01))); !errors.Is(err, ErrFinished) {
        t.Fatalf("add after finish err = %v", err)
    }
}

func TestStartRejectsNegativeShape(t *testing.T) {
    if _, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), -1, 0, 0); err == nil {
        t.Fatal("negative args accepted")
    }
}

func TestReturnIDs(t *testing.T) {
    b, err := Start(ident.TaskID{}, 0, ident.FunctionID(fillID(0xF1)), 0, 3, 0)
    if err != nil { t.Fatalf("start: %v", err) }
    spec, err := b.Finish()
    if err != nil { t.Fatalf("finish: %v", err) }
    seen := map[ident.ObjectID]bool{}
    for i := 0; i < 3; i++ {
        rid := spec.ReturnID(i)
        if rid.IsNil() { t.Fatalf("return %d is zero", i) }
        if seen[rid] { t.Fatalf("return %d duplicates another", i) }
        seen[rid] = true
        // independently recomputable from the task id alone
        if got := ReturnIDFor(spec.TaskID(), i); got != rid {
            t.Fatalf("return %d: recomputed %s, stored %s", i, got, rid)
        }
    }
}
