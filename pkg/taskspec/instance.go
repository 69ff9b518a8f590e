package taskspec

import (
    "github.com/rohan-flutterint/rayAI/pkg/ident"
)

// State is the scheduling state of one task instance. Exactly one state is
// held at a time; the values are single bit flags so a StateSet can express
// interest in several of them.
type State uint32

const (
    // StateWaiting marks an instance admitted but not yet placed.
    StateWaiting State = 1 << iota
    // StateScheduled marks an instance assigned to a node.
    StateScheduled
    // StateRunning marks an instance executing on its node.
    StateRunning
    // StateDone marks a finished attempt. Terminal.
    StateDone
)

func (s State) String() string {
    switch s {
    case StateWaiting:
        return "waiting"
    case StateScheduled:
        return "scheduled"
    case StateRunning:
        return "running"
    case StateDone:
        return "done"
    default:
        return "invalid"
    }
}

// StateSet is a filter over states, used by watchers to express interest in
// any of several states. It is never the state of an instance itself.
type StateSet uint32

// States builds a set from individual states.
func States(ss ...State) StateSet {
    var f StateSet
    for _, s := range ss {
        f |= StateSet(s)
    }
    return f
}

// Has reports whether s is in the set.
func (f StateSet) Has(s State) bool { return f&StateSet(s) != 0 }

// Union merges two sets.
func (f StateSet) Union(o StateSet) StateSet { return f | o }

// Update is the minimal delta applied to an instance's mutable fields: the
// next state and the node assignment. It has no identity of its own; routing
// it to an instance is the caller's concern.
type Update struct {
    State State        `json:"state"`
    Node  ident.NodeID `json:"node"`
}

// Instance is one scheduling attempt of a specification. It owns an embedded
// copy of the spec, so the caller's buffer is never aliased. The state and
// node fields are mutable; if several actors may update one instance, the
// surrounding scheduler must serialize them.
type Instance struct {
    iid   ident.TaskIID
    state State
    node  ident.NodeID
    spec  *Spec
}

// instanceOverhead is the bookkeeping carried on top of the embedded spec.
const instanceOverhead = 2*ident.Size + 4

// NewInstance creates an instance around a copy of spec.
func NewInstance(iid ident.TaskIID, spec *Spec, state State, node ident.NodeID) *Instance {
    return &Instance{iid: iid, state: state, node: node, spec: spec.Clone()}
}

// IID is the globally unique id of this attempt.
func (in *Instance) IID() ident.TaskIID { return in.iid }

// State returns the current scheduling state.
func (in *Instance) State() State { return in.state }

// SetState overwrites the scheduling state. Transition policy lives in the
// scheduler, not here.
func (in *Instance) SetState(s State) { in.state = s }

// Node returns the assigned node.
func (in *Instance) Node() ident.NodeID { return in.node }

// SetNode overwrites the node assignment.
func (in *Instance) SetNode(n ident.NodeID) { in.node = n }

// Apply copies an update's fields into the instance.
func (in *Instance) Apply(up Update) {
    in.state = up.State
    in.node = up.Node
}

// Spec returns the read-only view of the embedded specification copy.
func (in *Instance) Spec() *Spec { return in.spec }

// Size is the total byte footprint: instance bookkeeping plus the embedded
// specification.
func (in *Instance) Size() int { return instanceOverhead + in.spec.Size() }
