package main

import (
    "fmt"
    "os"

    "go.uber.org/zap"

    "github.com/rohan-flutterint/rayAI/pkg/config"
    "github.com/rohan-flutterint/rayAI/pkg/ident"
    "github.com/rohan-flutterint/rayAI/pkg/observability"
    "github.com/rohan-flutterint/rayAI/pkg/tasklog"
    "github.com/rohan-flutterint/rayAI/pkg/taskspec"
    "github.com/rohan-flutterint/rayAI/pkg/taskspec/codec"
)

// run is the main entry point after CLI parsing.
func run(opts Options) int {
    cfg, err := config.Load(opts.ConfigPath)
    if err != nil {
        _, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
        return 1
    }

    logger, err := observability.SetupLogger(cfg.Log)
    if err != nil {
        _, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
        return 1
    }
    defer func() { _ = logger.Sync() }()

    zap.L().Info("rayai-sim started", zap.String("app", cfg.AppName), zap.Int("tasks", opts.Tasks))

    node, err := localNodeID(cfg)
    if err != nil {
        zap.L().Error("node id", zap.Error(err))
        return 1
    }

    reg := codec.NewRegistry()
    cb, err := codec.CBOR()
    if err != nil {
        zap.L().Error("cbor codec", zap.Error(err))
        return 1
    }
    reg.Register(cb)

    log := tasklog.New()
    done := log.Watch(taskspec.States(taskspec.StateDone), cfg.TaskLog.WatchBuffer)

    // Submit: every task calls the same function on one shared object plus a
    // per-task inline payload. Identical inputs would collapse to one task
    // id, so the payload varies per task.
    fn := ident.FunctionID(mustRand())
    shared := ident.ObjectID(mustRand())
    for i := 0; i < opts.Tasks; i++ {
        b, err := taskspec.Start(ident.TaskID{}, uint64(i), fn, 2, 1, 4)
        if err != nil {
            zap.L().Error("start", zap.Error(err))
            return 1
        }
        if _, err := b.AddRef(shared); err != nil {
            zap.L().Error("add ref", zap.Error(err))
            return 1
        }
        if _, err := b.AddVal([]byte{byte(i), byte(i >> 8), 0, 0}); err != nil {
            zap.L().Error("add val", zap.Error(err))
            return 1
        }
        spec, err := b.Finish()
        if err != nil {
            zap.L().Error("finish", zap.Error(err))
            return 1
        }
        iid := ident.TaskIID(mustRand())
        inst := taskspec.NewInstance(iid, spec, taskspec.StateWaiting, ident.NodeID{})
        if err := log.Put(inst); err != nil {
            zap.L().Error("admit", zap.Error(err))
            return 1
        }
        zap.L().Info("submitted",
            zap.String("iid", iid.String()),
            zap.String("task", spec.TaskID().String()),
            zap.String("return0", spec.ReturnID(0).String()))
    }

    // Dispatch: pop waiting instances in admission order and walk each one to
    // done. Every transition round-trips through the CBOR codec to exercise
    // the same path a remote applier would use.
    steps := []taskspec.State{taskspec.StateScheduled, taskspec.StateRunning, taskspec.StateDone}
    for {
        inst, ok := log.NextWaiting()
        if !ok {
            break
        }
        for _, st := range steps {
            wire, err := codec.EncodeBody(reg, codec.FormatCBOR, taskspec.Update{State: st, Node: node})
            if err != nil {
                zap.L().Error("encode update", zap.Error(err))
                return 1
            }
            var up taskspec.Update
            if _, err := codec.DecodeBody(reg, wire, &up); err != nil {
                zap.L().Error("decode update", zap.Error(err))
                return 1
            }
            if err := log.Apply(inst.IID(), up); err != nil {
                zap.L().Error("apply", zap.Error(err))
                return 1
            }
        }
    }

    for i := 0; i < opts.Tasks; i++ {
        ev := <-done
        fmt.Printf("done %s on %s\n", ev.IID, ev.Node)
    }
    zap.L().Info("all attempts finished", zap.Int("count", opts.Tasks))
    return 0
}

// localNodeID resolves the configured node id, generating one when unset.
func localNodeID(cfg *config.Config) (ident.NodeID, error) {
    if cfg.NodeID != "" {
        id, err := ident.FromHex(cfg.NodeID)
        if err != nil {
            return ident.NodeID{}, fmt.Errorf("node_id: %w", err)
        }
        return ident.NodeID(id), nil
    }
    id, err := ident.Rand()
    return ident.NodeID(id), err
}

func mustRand() ident.UniqueID {
    id, err := ident.Rand()
    if err != nil {
        panic(err)
    }
    return id
}
