package main

import "flag"

// Options holds CLI options for the simulator.
type Options struct {
    ConfigPath string
    Tasks      int
}

// ParseFlags parses CLI flags from args and returns Options.
func ParseFlags(args []string) Options {
    fs := flag.NewFlagSet("rayai-sim", flag.ExitOnError)
    var opts Options
    fs.StringVar(&opts.ConfigPath, "config", "", "Path to YAML config file")
    fs.IntVar(&opts.Tasks, "tasks", 8, "Number of tasks to submit")
    _ = fs.Parse(args)
    return opts
}
