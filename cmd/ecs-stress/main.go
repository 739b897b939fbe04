package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/hive/ecs"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	duration := flag.Duration("duration", 0, "The total duration the test should run for (overrides config).")
	entityCount := flag.Int("entities", 0, "The initial number of entities to create (overrides config).")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	seed := flag.Int64("seed", 1, "Seed for the population RNG.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *duration > 0 {
		cfg.Duration.Duration = *duration
	}
	if *entityCount > 0 {
		cfg.Entities = *entityCount
	}
	if *gcPauseMetrics {
		cfg.GCPauseMetrics = true
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting ECS stress test",
		zap.Duration("duration", cfg.Duration.Duration),
		zap.Int("entities", cfg.Entities),
		zap.Int("churn_per_tick", cfg.ChurnPerTick))

	rng := rand.New(rand.NewSource(*seed))

	registry := ecs.NewComponentRegistry()
	registerStressComponents(registry)
	world := ecs.NewWorld(registry)
	systems := ecs.NewSystems(world, ecs.NewEventBus())
	registerStressSystems(systems, rng, cfg.ChurnPerTick)
	systems.Configure()

	logger.Info("populating world", zap.Int("entities", cfg.Entities))
	for i := 0; i < cfg.Entities; i++ {
		spawnRandomEntity(world, rng)
	}
	logger.Info("population complete", zap.Int("live", world.Len()))

	report := &Report{
		Duration:       cfg.Duration.Duration,
		Entities:       cfg.Entities,
		Components:     stressComponentCount,
		Systems:        stressSystemCount,
		GCPauseMetrics: cfg.GCPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			systems.UpdateAll(float64(deltaTime) / float64(time.Second))
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.FinalEntities = world.Len()
	report.FinalCapacity = world.Cap()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("updates", totalUpdates),
		zap.Int("live", world.Len()),
		zap.Int("capacity", world.Cap()))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
