package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tobin-hale/orbmaze/internal/config"
	"github.com/tobin-hale/orbmaze/internal/game"
)

var (
	flagConfig   string
	flagRuns     int
	flagTicks    int
	flagSeedBase int64
	flagSeedStep int64
	flagTier     string
	flagLevel    int
	flagRealtime bool
	flagTPS      int
)

var rootCmd = &cobra.Command{
	Use:   "headless-report",
	Short: "Run headless stealth-maze simulations and print a report",
	Long: `Runs the maze/guardian simulation without any presentation layer.
The player is driven by a simple wander autopilot so guardian perception,
pursuit and stuck recovery get exercised across many seeds.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "optional YAML config file")
	rootCmd.Flags().IntVar(&flagRuns, "runs", 0, "number of simulation runs (overrides config)")
	rootCmd.Flags().IntVar(&flagTicks, "ticks", 0, "max ticks per run (overrides config)")
	rootCmd.Flags().Int64Var(&flagSeedBase, "seed-base", -1, "base RNG seed for run 1 (overrides config)")
	rootCmd.Flags().Int64Var(&flagSeedStep, "seed-step", 0, "seed increment between runs (overrides config)")
	rootCmd.Flags().StringVar(&flagTier, "tier", "", "difficulty tier: easy, normal, hard (overrides config)")
	rootCmd.Flags().IntVar(&flagLevel, "level", 0, "level number (overrides config)")
	rootCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "pace the simulation with a fixed-timestep clock")
	rootCmd.Flags().IntVar(&flagTPS, "tps", 60, "ticks per second in realtime mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlagOverrides(&cfg)

	tier, err := game.ParseTier(cfg.Tier)
	if err != nil {
		return err
	}

	fmt.Printf("=== Headless Stealth-Maze Report ===\n")
	fmt.Printf("tier=%s level=%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		tier, cfg.Level, cfg.Runs, cfg.Ticks, cfg.SeedBase, cfg.SeedStep)

	reports := make([]game.RunReport, 0, cfg.Runs)
	for i := 0; i < cfg.Runs; i++ {
		seed := cfg.SeedBase + int64(i)*cfg.SeedStep
		rep, err := runOne(tier, cfg.Level, seed, cfg.Ticks)
		if err != nil {
			log.WithError(err).WithField("run", i+1).Error("run failed")
			continue
		}
		fmt.Printf("--- run %d (seed %d) ---\n%s\n", i+1, seed, rep.Format())
		reports = append(reports, rep)
	}

	printAggregate(reports)
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if flagRuns > 0 {
		cfg.Runs = flagRuns
	}
	if flagTicks > 0 {
		cfg.Ticks = flagTicks
	}
	if flagSeedBase >= 0 {
		cfg.SeedBase = flagSeedBase
	}
	if flagSeedStep != 0 {
		cfg.SeedStep = flagSeedStep
	}
	if flagTier != "" {
		cfg.Tier = flagTier
	}
	if flagLevel > 0 {
		cfg.Level = flagLevel
	}
}

// runOne simulates a single level to a terminal outcome or the tick cap.
func runOne(tier game.Tier, level int, seed int64, maxTicks int) (game.RunReport, error) {
	lvl := game.ConfigFor(tier, level)
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation seeding

	registry := game.NewRegistry()
	_, grid := registry.Generate(lvl.Cols, lvl.Rows, lvl.Complexity, lvl.Density, rng)
	w := game.NewLevel(grid, lvl, seed)

	pilot := newAutopilot(rng)
	step := func() bool {
		pilot.steer(w)
		res := w.Tick(1)
		_ = res
		return w.Outcome() == game.OutcomeOngoing && w.CurrentTick() < maxTicks
	}

	if flagRealtime {
		ctx := context.Background()
		err := game.RunLoop(ctx, flagTPS, step)
		if err != nil && err != context.Canceled {
			return game.RunReport{}, err
		}
	} else {
		for step() {
		}
	}

	return w.Report(), nil
}

// autopilot wanders the player through the maze: hold a heading until it
// is blocked or a hop count elapses, then pick a fresh open one. Crude,
// but enough to drag the player past guardian vision cones.
type autopilot struct {
	rng     *rand.Rand
	dirX    float64
	dirY    float64
	hops    int
	maxHops int
	speed   float64
}

func newAutopilot(rng *rand.Rand) *autopilot {
	p := &autopilot{rng: rng, speed: 2.5}
	p.pickDirection()
	return p
}

func (p *autopilot) pickDirection() {
	a := p.rng.Float64() * 2 * math.Pi
	p.dirX, p.dirY = math.Cos(a), math.Sin(a)
	p.hops = 0
	p.maxHops = 30 + p.rng.Intn(90)
}

func (p *autopilot) steer(w *game.World) {
	p.hops++
	if p.hops > p.maxHops {
		p.pickDirection()
	}
	for tries := 0; tries < 8; tries++ {
		if w.MovePlayer(p.dirX*p.speed, p.dirY*p.speed) {
			return
		}
		p.pickDirection()
	}
}

func printAggregate(reports []game.RunReport) {
	if len(reports) == 0 {
		fmt.Println("no successful runs")
		return
	}

	var completes, caughts, timeouts, running int
	var detections, teleports, orbs, orbsTotal int
	firstDetSum, firstDetRuns := 0, 0
	for _, r := range reports {
		switch r.Outcome {
		case game.OutcomeComplete:
			completes++
		case game.OutcomeCaught:
			caughts++
		case game.OutcomeTimeout:
			timeouts++
		default:
			running++
		}
		detections += r.Detections
		teleports += r.Teleports
		orbs += r.OrbsCollected
		orbsTotal += r.OrbsTotal
		if r.FirstDetectionTick >= 0 {
			firstDetSum += r.FirstDetectionTick
			firstDetRuns++
		}
	}

	n := len(reports)
	fmt.Printf("=== Aggregate over %d runs ===\n", n)
	fmt.Printf("outcomes: complete=%d caught=%d timeout=%d ongoing=%d\n",
		completes, caughts, timeouts, running)
	fmt.Printf("detections=%d (%.1f/run)  teleports=%d  orbs=%d/%d\n",
		detections, float64(detections)/float64(n), teleports, orbs, orbsTotal)
	if firstDetRuns > 0 {
		fmt.Printf("mean first detection: T=%d (over %d runs with detection)\n",
			firstDetSum/firstDetRuns, firstDetRuns)
	} else {
		fmt.Println("mean first detection: never detected")
	}
}
