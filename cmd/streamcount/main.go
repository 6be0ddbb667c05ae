package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-streamcount/pkg/config"
	"github.com/dd0wney/cluso-streamcount/pkg/graph"
	"github.com/dd0wney/cluso-streamcount/pkg/logging"
	"github.com/dd0wney/cluso-streamcount/pkg/metrics"
	"github.com/dd0wney/cluso-streamcount/pkg/pipeline"
	"github.com/dd0wney/cluso-streamcount/pkg/publish"
	"github.com/dd0wney/cluso-streamcount/pkg/pubsub"
	"github.com/dd0wney/cluso-streamcount/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	input := flag.String("input", "", "Edge list file (\".sz\" for snappy-compressed)")
	seed := flag.Int64("seed", 0, "Random seed (same seed reproduces the run)")
	maxRounds := flag.Int("max-rounds", 0, "Round budget for the feedback loop")
	edgeCount := flag.Int("edges", 0, "Edge count scalar for the estimate formula (0 = derive)")
	vertexCount := flag.Int("vertices", 0, "Vertex count scalar for the estimate formula (0 = derive)")
	stateCap := flag.Int("state-cap", config.DefaultStateCap, "Max live round states, 0 disables eviction")
	exact := flag.Bool("exact", false, "Also run the exact triangle counter")
	metricsAddr := flag.String("metrics-addr", "", "Serve /metrics and /healthz on this address")
	publishAddr := flag.String("publish", "", "Stream estimates on a nanomsg PUB socket at this URL")
	flag.Parse()

	log := logging.DefaultLogger().With(logging.Component("streamcount"))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", logging.Error(err))
		os.Exit(1)
	}

	// Flags explicitly set on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "seed":
			cfg.Seed = *seed
		case "max-rounds":
			cfg.MaxRounds = *maxRounds
		case "edges":
			cfg.EdgeCount = *edgeCount
		case "vertices":
			cfg.VertexCount = *vertexCount
		case "state-cap":
			cfg.StateCap = *stateCap
		case "exact":
			cfg.Exact = *exact
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "publish":
			cfg.PublishAddr = *publishAddr
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", logging.Error(err))
		os.Exit(1)
	}
	if cfg.Input == "" {
		log.Error("no input file; use -input or the config file")
		os.Exit(1)
	}

	timer := logging.StartTimer(log, "edge list loaded", logging.Path(cfg.Input))
	edges, err := graph.LoadEdgeList(cfg.Input)
	if err != nil {
		timer.EndError(err)
		os.Exit(1)
	}
	timer.End()

	stats := graph.ComputeStats(edges)
	log.Info("graph loaded",
		logging.Int("vertices", stats.VertexCount),
		logging.Int("edges", stats.EdgeCount))

	// The estimate scalars default to the loaded graph's true sizes
	if cfg.EdgeCount == 0 {
		cfg.EdgeCount = stats.EdgeCount
	}
	if cfg.VertexCount == 0 {
		cfg.VertexCount = stats.VertexCount
	}

	registry := graph.NewVertexRegistry()
	if err := registry.RegisterEdges(edges); err != nil {
		log.Error("failed to build vertex registry", logging.Error(err))
		os.Exit(1)
	}
	registry.Freeze()
	if registry.Len() < 3 {
		log.Error("graph too small to sample triangles", logging.Count(registry.Len()))
		os.Exit(1)
	}

	if cfg.Exact {
		timer := logging.StartTimer(log, "exact triangle count")
		result := graph.CountTrianglesExact(edges)
		timer.End()
		log.Info("exact count", logging.Int("triangles", result.GlobalCount))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.DefaultRegistry()
	collectorStop := make(chan struct{})
	defer close(collectorStop)
	reg.StartSystemCollector(10*time.Second, collectorStop)

	bus := pubsub.NewPubSub()
	defer bus.Shutdown()

	p, err := pipeline.New(registry, pipeline.Config{
		MaxRounds:   cfg.MaxRounds,
		EdgeCount:   cfg.EdgeCount,
		VertexCount: cfg.VertexCount,
		StateCap:    cfg.StateCap,
		Seed:        cfg.Seed,
	}, pipeline.WithLogger(log), pipeline.WithMetrics(reg), pipeline.WithBus(bus))
	if err != nil {
		log.Error("failed to build pipeline", logging.Error(err))
		os.Exit(1)
	}
	log = log.With(logging.RunID(p.RunID()))

	if cfg.MetricsAddr != "" {
		ms := server.NewMetricsServer(cfg.MetricsAddr, reg, log)
		go func() {
			if err := ms.Start(); err != nil {
				log.Error("metrics server failed", logging.Error(err))
			}
		}()
		defer ms.Shutdown(5 * time.Second)
	}

	if cfg.PublishAddr != "" {
		pub, err := publish.NewPublisher(cfg.PublishAddr, p.RunID(), log)
		if err != nil {
			log.Error("failed to open publish socket", logging.Error(err))
			os.Exit(1)
		}
		defer pub.Close()
		pub.Attach(ctx, bus)
	}

	log.Info("starting estimator",
		logging.Seed(cfg.Seed),
		logging.Int("max_rounds", cfg.MaxRounds),
		logging.Int("edge_scalar", cfg.EdgeCount),
		logging.Int("vertex_scalar", cfg.VertexCount))

	// One (round, estimate) pair per change to any round's estimate
	err = p.Run(ctx, edges, func(est pipeline.Estimate) {
		fmt.Printf("(%d,%d)\n", est.Round, est.Triangles)
	})
	if err != nil {
		log.Error("run aborted", logging.Error(err))
		os.Exit(1)
	}
}
