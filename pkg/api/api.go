// Package api declares the narrow contracts between the task-specification
// core and its external collaborators. The core ships none of the
// implementations: placement, execution, object storage and byte transport
// all live elsewhere.
package api

import (
    "context"

    "github.com/rohan-flutterint/rayAI/pkg/ident"
    "github.com/rohan-flutterint/rayAI/pkg/taskspec"
)

// Transport moves a finished specification's raw bytes to another process or
// machine without interpreting them. Implementations copy exactly
// spec.Size() bytes; the handoff is exclusive.
type Transport interface {
    Ship(ctx context.Context, spec *taskspec.Spec) error
}

// Scheduler creates task instances from specifications and decides their
// state transitions. Place returns the node an instance should run on.
type Scheduler interface {
    Place(ctx context.Context, inst *taskspec.Instance) (ident.NodeID, error)
}

// UpdateSink receives scheduling-state deltas addressed to an instance.
// tasklog.Log satisfies this.
type UpdateSink interface {
    Apply(iid ident.TaskIID, up taskspec.Update) error
}

// ObjectResolver fetches the bytes behind a by-reference argument from
// whatever object store the deployment runs.
type ObjectResolver interface {
    Resolve(ctx context.Context, obj ident.ObjectID) ([]byte, error)
}
