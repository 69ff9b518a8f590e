package tasklog

import (
    "errors"
    "testing"

    "github.com/rohan-flutterint/rayAI/pkg/ident"
    "github.com/rohan-flutterint/rayAI/pkg/taskspec"
)

func fillID(v byte) ident.UniqueID {
    var id ident.UniqueID
    for i := range id {
        id[i] = v
    }
    return id
}

func newInstance(t *testing.T, seed byte) *taskspec.Instance {
    t.Helper()
    b, err := taskspec.Start(ident.TaskID{}, uint64(seed), ident.FunctionID(fillID(0xF1)), 1, 1, 0)
    if err != nil { t.Fatalf("start: %v", err) }
    if _, err := b.AddRef(ident.ObjectID(fillID(seed))); err != nil { t.Fatalf("add: %v", err) }
    spec, err := b.Finish()
    if err != nil { t.Fatalf("finish: %v", err) }
    return taskspec.NewInstance(ident.TaskIID(fillID(seed)), spec, taskspec.StateWaiting, ident.NodeID{})
}

func TestPutGetRemove(t *testing.T) {
    l := New()
    inst := newInstance(t, 1)
    if err := l.Put(inst); err != nil { t.Fatalf("put: %v", err) }
    if l.Len() != 1 { t.Fatalf("len = %d", l.Len()) }

    got, ok := l.Get(inst.IID())
    if !ok || got != inst { t.Fatal("get did not return the admitted instance") }

    if err := l.Put(newInstance(t, 1)); !errors.Is(err, ErrDuplicate) {
        t.Fatalf("duplicate put err = %v", err)
    }

    l.Remove(inst.IID())
    if _, ok := l.Get(inst.IID()); ok { t.Fatal("instance survived remove") }
    if l.Len() != 0 { t.Fatalf("len after remove = %d", l.Len()) }
}

func TestApply(t *testing.T) {
    l := New()
    inst := newInstance(t, 1)
    if err := l.Put(inst); err != nil { t.Fatalf("put: %v", err) }

    node := ident.NodeID(fillID(0xBB))
    if err := l.Apply(inst.IID(), taskspec.Update{State: taskspec.StateScheduled, Node: node}); err != nil {
        t.Fatalf("apply: %v", err)
    }
    if inst.State() != taskspec.StateScheduled || inst.Node() != node {
        t.Fatalf("after apply: %v %s", inst.State(), inst.Node())
    }

    other := ident.TaskIID(fillID(0x7F))
    if err := l.Apply(other, taskspec.Update{State: taskspec.StateDone}); !errors.Is(err, ErrUnknown) {
        t.Fatalf("unknown apply err = %v", err)
    }
}

func TestNextWaitingFIFO(t *testing.T) {
    l := New()
    first := newInstance(t, 1)
    second := newInstance(t, 2)
    third := newInstance(t, 3)
    for _, in := range []*taskspec.Instance{first, second, third} {
        if err := l.Put(in); err != nil { t.Fatalf("put: %v", err) }
    }
    // second leaves waiting before dispatch
    if err := l.Apply(second.IID(), taskspec.Update{State: taskspec.StateScheduled}); err != nil {
        t.Fatalf("apply: %v", err)
    }

    got, ok := l.NextWaiting()
    if !ok || got != first { t.Fatal("first pop should be the oldest waiting instance") }
    got, ok = l.NextWaiting()
    if !ok || got != third { t.Fatal("second pop should skip the scheduled instance") }
    if _, ok := l.NextWaiting(); ok { t.Fatal("pop from empty dispatch index") }
}

func TestRequeueReentersDispatch(t *testing.T) {
    l := New()
    inst := newInstance(t, 1)
    if err := l.Put(inst); err != nil { t.Fatalf("put: %v", err) }
    if _, ok := l.NextWaiting(); !ok { t.Fatal("no waiting instance") }

    // a retrying scheduler can move a popped attempt back to waiting
    if err := l.Apply(inst.IID(), taskspec.Update{State: taskspec.StateScheduled}); err != nil {
        t.Fatalf("apply: %v", err)
    }
    if err := l.Apply(inst.IID(), taskspec.Update{State: taskspec.StateWaiting}); err != nil {
        t.Fatalf("requeue: %v", err)
    }
    got, ok := l.NextWaiting()
    if !ok || got != inst { t.Fatal("requeued instance not dispatchable") }
}

func TestWatchFiltersBySet(t *testing.T) {
    l := New()
    inst := newInstance(t, 1)

    doneOnly := l.Watch(taskspec.States(taskspec.StateDone), 4)
    active := l.Watch(taskspec.States(taskspec.StateScheduled, taskspec.StateRunning), 4)

    if err := l.Put(inst); err != nil { t.Fatalf("put: %v", err) }
    node := ident.NodeID(fillID(0xBB))
    for _, st := range []taskspec.State{taskspec.StateScheduled, taskspec.StateRunning, taskspec.StateDone} {
        if err := l.Apply(inst.IID(), taskspec.Update{State: st, Node: node}); err != nil {
            t.Fatalf("apply %v: %v", st, err)
        }
    }

    ev := <-doneOnly
    if ev.State != taskspec.StateDone || ev.IID != inst.IID() || ev.Node != node {
        t.Fatalf("done event = %+v", ev)
    }
    select {
    case extra := <-doneOnly:
        t.Fatalf("unexpected extra event %+v", extra)
    default:
    }

    if ev := <-active; ev.State != taskspec.StateScheduled { t.Fatalf("first active event = %+v", ev) }
    if ev := <-active; ev.State != taskspec.StateRunning { t.Fatalf("second active event = %+v", ev) }
}
