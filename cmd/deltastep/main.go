// SPDX-License-Identifier: MIT
// Command deltastep runs single-source shortest paths over a seeded
// random graph on an in-process rank group, checks the result, and
// optionally dumps distances, a trace, and a JSON run summary.
//
// Exit codes: 0 on success, nonzero on any fatal class (bad
// configuration, missing weights, ownership violation, I/O failure).
package main

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/inconshreveable/log15"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/deltastep/convey"
	"github.com/katalvlaran/deltastep/core"
	"github.com/katalvlaran/deltastep/deltastep"
	"github.com/katalvlaran/deltastep/spmat"
)

var log = log15.New("pkg", "main")

// runConfig is the resolved driver configuration: YAML file first, then
// command-line flags on top.
type runConfig struct {
	NumVertices int     `yaml:"nvtxs"`
	EdgeProb    float64 `yaml:"edge_prob"`
	Seed        int64   `yaml:"seed"`
	Source      int     `yaml:"source"`
	Delta       float64 `yaml:"delta"`
	Ranks       int     `yaml:"ranks"`
	MaxWeight   float64 `yaml:"max_weight"`
	Trace       string  `yaml:"trace"`
	Dump        bool    `yaml:"dump"`
	Summary     string  `yaml:"summary"`
}

// runSummary is the JSON record written by --summary.
type runSummary struct {
	NumVertices    int     `json:"nvtxs"`
	NumEdges       int     `json:"nedges"`
	Ranks          int     `json:"ranks"`
	Source         int     `json:"source"`
	Delta          float64 `json:"forced_delta,omitempty"`
	LaptimeSeconds float64 `json:"laptime_seconds"`
	Unreachable    int     `json:"unreachable"`
	Fingerprint    string  `json:"fingerprint"`
}

func main() {
	app := cli.NewApp()
	app.Name = "deltastep"
	app.Usage = "bulk-synchronous delta-stepping shortest paths"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config,c", Usage: "YAML config `FILE` (flags override it)"},
		cli.IntFlag{Name: "nvtxs,n", Value: 1000, Usage: "number of vertices"},
		cli.Float64Flag{Name: "prob,e", Value: 0.01, Usage: "edge probability of the random graph"},
		cli.Int64Flag{Name: "seed", Value: 1, Usage: "RNG seed for graph and weights"},
		cli.IntFlag{Name: "source,s", Value: 0, Usage: "source vertex"},
		cli.Float64Flag{Name: "delta,d", Value: 0, Usage: "forced bucket width (0 derives 1/maxdeg)"},
		cli.IntFlag{Name: "ranks,p", Value: 4, Usage: "number of ranks"},
		cli.Float64Flag{Name: "maxweight", Value: 2.0, Usage: "upper bound of uniform edge weights"},
		cli.StringFlag{Name: "trace", Usage: "append bucket-state trace to `FILE`"},
		cli.BoolFlag{Name: "dump", Usage: "write dist.out and dist.wts"},
		cli.StringFlag{Name: "summary", Usage: "write a JSON run summary to `FILE`"},
		cli.BoolFlag{Name: "verbose,v", Usage: "debug logging"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}

// resolveConfig layers the YAML file (if any) under the explicit flags.
func resolveConfig(c *cli.Context) (runConfig, error) {
	cfg := runConfig{
		NumVertices: c.Int("nvtxs"),
		EdgeProb:    c.Float64("prob"),
		Seed:        c.Int64("seed"),
		Source:      c.Int("source"),
		Delta:       c.Float64("delta"),
		Ranks:       c.Int("ranks"),
		MaxWeight:   c.Float64("maxweight"),
		Trace:       c.String("trace"),
		Dump:        c.Bool("dump"),
		Summary:     c.String("summary"),
	}
	path := c.String("config")
	if path == "" {
		return cfg, nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	var file runConfig
	if err = yaml.Unmarshal(body, &file); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}

	// The file provides the base; any flag set on the command line wins.
	merged := file
	for _, f := range []struct {
		name string
		set  func()
	}{
		{"nvtxs", func() { merged.NumVertices = cfg.NumVertices }},
		{"prob", func() { merged.EdgeProb = cfg.EdgeProb }},
		{"seed", func() { merged.Seed = cfg.Seed }},
		{"source", func() { merged.Source = cfg.Source }},
		{"delta", func() { merged.Delta = cfg.Delta }},
		{"ranks", func() { merged.Ranks = cfg.Ranks }},
		{"maxweight", func() { merged.MaxWeight = cfg.MaxWeight }},
		{"trace", func() { merged.Trace = cfg.Trace }},
		{"dump", func() { merged.Dump = cfg.Dump }},
		{"summary", func() { merged.Summary = cfg.Summary }},
	} {
		if c.IsSet(f.name) {
			f.set()
		}
	}
	if merged.NumVertices == 0 {
		merged.NumVertices = cfg.NumVertices
	}
	if merged.Ranks == 0 {
		merged.Ranks = cfg.Ranks
	}

	return merged, nil
}

func run(c *cli.Context) error {
	lvl := log15.LvlInfo
	if c.Bool("verbose") {
		lvl = log15.LvlDebug
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(lvl, log15.StderrHandler))

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	edges, err := spmat.RandomSparse(cfg.NumVertices, cfg.EdgeProb,
		spmat.UniformWeightFn(0, cfg.MaxWeight), cfg.Seed)
	if err != nil {
		return err
	}
	log.Info("graph built", "nvtxs", cfg.NumVertices, "nedges", len(edges),
		"prob", cfg.EdgeProb, "seed", cfg.Seed)

	engineOpts := []deltastep.Option{
		deltastep.WithSource(core.GlobalVertex(cfg.Source)),
	}
	if cfg.Delta != 0 {
		engineOpts = append(engineOpts, deltastep.WithForcedDelta(cfg.Delta))
	}
	if cfg.Trace != "" {
		engineOpts = append(engineOpts, deltastep.WithTrace(cfg.Trace))
	}

	// Rank 0 deposits the assembled vector and laptime here; the
	// errgroup inside convey.Run orders these writes before we read them.
	var (
		mu        sync.Mutex
		assembled []float64
		laptime   float64
	)
	err = convey.Run(cfg.Ranks, func(rk *convey.Rank) error {
		g, gerr := spmat.New(cfg.NumVertices, edges, rk.ID(), rk.NumRanks())
		if gerr != nil {
			return gerr
		}
		info, rerr := deltastep.Run(g, rk, engineOpts...)
		if rerr != nil {
			return rerr
		}
		if _, cerr := info.Check(g, rk, cfg.Dump); cerr != nil {
			return cerr
		}
		full, aerr := deltastep.AssembleDistances(g, rk, info)
		if aerr != nil {
			return aerr
		}
		if rk.ID() == 0 {
			mu.Lock()
			assembled = full
			laptime = info.Laptime.Seconds()
			mu.Unlock()
			if cfg.Dump {
				if derr := (&deltastep.SsspInfo{
					Distance: full,
					Source:   info.Source,
					Laptime:  info.Laptime,
				}).DumpWts("dist.wts"); derr != nil {
					return derr
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if cfg.Summary != "" {
		unreachable := 0
		for _, d := range assembled {
			if math.IsInf(d, 1) {
				unreachable++
			}
		}
		body, merr := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(runSummary{
			NumVertices:    cfg.NumVertices,
			NumEdges:       len(edges),
			Ranks:          cfg.Ranks,
			Source:         cfg.Source,
			Delta:          cfg.Delta,
			LaptimeSeconds: laptime,
			Unreachable:    unreachable,
			Fingerprint:    fmt.Sprintf("%016x", deltastep.Fingerprint(assembled)),
		}, "", "  ")
		if merr != nil {
			return errors.Wrap(merr, "marshal summary")
		}
		if werr := os.WriteFile(cfg.Summary, body, 0o644); werr != nil {
			return errors.Wrap(werr, "write summary")
		}
	}

	return nil
}
