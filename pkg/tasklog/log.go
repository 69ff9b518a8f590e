// Package tasklog keeps the in-memory record of task instances a scheduler is
// tracking: admission, update application, state-set watchers and a FIFO
// index of instances still waiting for placement. It stores state and applies
// deltas; transition policy belongs to the scheduler driving it.
package tasklog

import (
    "errors"
    "fmt"
    "sync"

    "github.com/emirpasic/gods/trees/redblacktree"
    "github.com/emirpasic/gods/utils"
    "go.uber.org/zap"

    "github.com/rohan-flutterint/rayAI/pkg/ident"
    "github.com/rohan-flutterint/rayAI/pkg/taskspec"
)

var (
    ErrDuplicate = errors.New("tasklog: instance already admitted")
    ErrUnknown   = errors.New("tasklog: unknown instance")
)

// Event describes one applied state change.
type Event struct {
    IID   ident.TaskIID  `json:"iid"`
    State taskspec.State `json:"state"`
    Node  ident.NodeID   `json:"node"`
}

type record struct {
    inst *taskspec.Instance
    seq  uint64 // admission order, key into the pending index
}

type watcher struct {
    set taskspec.StateSet
    ch  chan Event
}

// Log is the instance table. All access serializes through one RWMutex, so
// concurrent appliers to the same instance are ordered, honoring the
// single-writer requirement on instance fields.
type Log struct {
    mu       sync.RWMutex
    byIID    map[ident.TaskIID]*record
    pending  *redblacktree.Tree // seq -> *record, instances still waiting
    seq      uint64
    watchers []watcher
}

// New returns an empty log.
func New() *Log {
    return &Log{
        byIID:   make(map[ident.TaskIID]*record),
        pending: redblacktree.NewWith(utils.UInt64Comparator),
    }
}

// Put admits an instance. Fails if its iid is already present.
func (l *Log) Put(inst *taskspec.Instance) error {
    l.mu.Lock()
    defer l.mu.Unlock()
    iid := inst.IID()
    if _, ok := l.byIID[iid]; ok {
        return fmt.Errorf("%w: %s", ErrDuplicate, iid)
    }
    l.seq++
    rec := &record{inst: inst, seq: l.seq}
    l.byIID[iid] = rec
    if inst.State() == taskspec.StateWaiting {
        l.pending.Put(rec.seq, rec)
    }
    zap.L().Debug("instance admitted",
        zap.String("iid", iid.String()),
        zap.String("task", inst.Spec().TaskID().String()),
        zap.String("state", inst.State().String()))
    l.notify(Event{IID: iid, State: inst.State(), Node: inst.Node()})
    return nil
}

// Get returns the instance for iid.
func (l *Log) Get(iid ident.TaskIID) (*taskspec.Instance, bool) {
    l.mu.RLock()
    defer l.mu.RUnlock()
    rec, ok := l.byIID[iid]
    if !ok {
        return nil, false
    }
    return rec.inst, true
}

// Apply copies an update into the instance's mutable fields, maintains the
// pending index and notifies watchers whose set matches the new state.
func (l *Log) Apply(iid ident.TaskIID, up taskspec.Update) error {
    l.mu.Lock()
    defer l.mu.Unlock()
    rec, ok := l.byIID[iid]
    if !ok {
        return fmt.Errorf("%w: %s", ErrUnknown, iid)
    }
    was := rec.inst.State()
    rec.inst.Apply(up)
    if was == taskspec.StateWaiting && up.State != taskspec.StateWaiting {
        l.pending.Remove(rec.seq)
    } else if was != taskspec.StateWaiting && up.State == taskspec.StateWaiting {
        // requeued attempt goes back to the dispatch index
        l.pending.Put(rec.seq, rec)
    }
    if up.State == taskspec.StateDone {
        zap.L().Debug("instance done",
            zap.String("iid", iid.String()),
            zap.String("node", up.Node.String()))
    }
    l.notify(Event{IID: iid, State: up.State, Node: up.Node})
    return nil
}

// Remove drops the instance's bookkeeping.
func (l *Log) Remove(iid ident.TaskIID) {
    l.mu.Lock()
    defer l.mu.Unlock()
    rec, ok := l.byIID[iid]
    if !ok {
        return
    }
    delete(l.byIID, iid)
    l.pending.Remove(rec.seq)
}

// Len is the number of tracked instances.
func (l *Log) Len() int {
    l.mu.RLock()
    defer l.mu.RUnlock()
    return len(l.byIID)
}

// NextWaiting pops the oldest instance still in StateWaiting from the
// dispatch index and returns it. The instance stays in the table and its
// state is untouched; deciding the transition is the caller's job. A second
// call will not return the same instance unless it is requeued.
func (l *Log) NextWaiting() (*taskspec.Instance, bool) {
    l.mu.Lock()
    defer l.mu.Unlock()
    node := l.pending.Left()
    if node == nil {
        return nil, false
    }
    rec := node.Value.(*record)
    l.pending.Remove(node.Key)
    return rec.inst, true
}

// Watch registers interest in states in set. Events are delivered on the
// returned channel with capacity buf; deliveries to a full channel are
// dropped rather than blocking appliers.
func (l *Log) Watch(set taskspec.StateSet, buf int) <-chan Event {
    l.mu.Lock()
    defer l.mu.Unlock()
    ch := make(chan Event, buf)
    l.watchers = append(l.watchers, watcher{set: set, ch: ch})
    return ch
}

// notify is called with l.mu held.
func (l *Log) notify(ev Event) {
    for _, w := range l.watchers {
        if !w.set.Has(ev.State) {
            continue
        }
        select {
        case w.ch <- ev:
        default:
            zap.L().Warn("watcher channel full, event dropped",
                zap.String("iid", ev.IID.String()),
                zap.String("state", ev.State.String()))
        }
    }
}
