package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/config"
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/core/event"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/data"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/persist"
	"github.com/driftcity/engine/internal/physics"
	"github.com/driftcity/engine/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(seed uint32) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           DriftCity Engine v0.1.0         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      open-world streaming runtime         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mworld seed:\033[0m %d\n\n", seed)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main engine logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("DRIFTCITY_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.World.Seed)

	// 3. Open the save store
	printSection("save store")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeDB, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	defer closeDB()
	printOK(fmt.Sprintf("%s backend ready", cfg.Save.Backend))
	fmt.Println()

	// 4. Load data tables
	printSection("data tables")

	vehicles, err := loadVehicles(cfg.Assets.VehicleSpecs)
	if err != nil {
		return fmt.Errorf("load vehicle specs: %w", err)
	}
	printStat("vehicle specs", vehicles.Len())

	catalogs, err := loadCatalogs(cfg.Assets.Catalogs)
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}
	printStat("building archetypes", len(catalogs.Buildings))
	printStat("tree archetypes", len(catalogs.Trees))
	printStat("npc archetypes", len(catalogs.NPCs))
	fmt.Println()

	// 5. Wire the world
	deps := system.NewDeps(cfg, vehicles, catalogs, log)

	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(deps.Bus))
	runner.Register(system.NewInputSystem(deps, &system.QueueInput{}))
	runner.Register(system.NewAISystem(deps))
	chunkGen := system.NewChunkGenSystem(deps)
	runner.Register(chunkGen)
	runner.Register(system.NewStreamingSystem(deps))
	runner.Register(system.NewSpawnSystem(deps))
	runner.Register(system.NewUnloadSystem(deps))
	runner.Register(system.NewLodSystem(deps))
	runner.Register(system.NewCarSystem(deps))
	runner.Register(system.NewHeliSystem(deps))
	runner.Register(system.NewJetSystem(deps))
	runner.Register(system.NewYachtSystem(deps))
	runner.Register(system.NewIntegrateSystem(deps))
	dirty := system.NewDirtySystem(deps)
	runner.Register(dirty)
	runner.Register(system.NewMetricsSystem(deps, dirty, chunkGen))
	persistence := system.NewPersistenceSystem(deps, store)
	runner.Register(persistence)
	runner.Register(system.NewCleanupSystem(deps))

	// 6. Restore or create the player
	if slot := os.Getenv("DRIFTCITY_LOAD_SLOT"); slot != "" {
		n, err := persistence.LoadSlot(ctx, slot)
		if err != nil {
			return fmt.Errorf("load slot %s: %w", slot, err)
		}
		printStat("restored entities", n)
	}
	spawnPlayer(deps)
	printOK("player spawned")
	fmt.Println()

	// 7. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.World.TickRate)
	defer ticker.Stop()

	printSection("engine ready")
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.World.TickRate))
	fmt.Println()

	autosaveCounter := 0
	ticksPerAutosave := int(5 * time.Minute / cfg.World.TickRate)

	for {
		select {
		case <-ticker.C:
			deps.Clock.Tick(float32(cfg.World.TickRate.Seconds()))
			runner.Tick(cfg.World.TickRate)

			autosaveCounter++
			if autosaveCounter >= ticksPerAutosave {
				autosaveCounter = 0
				event.Emit(deps.Bus, event.RequestSaveSnapshot{Slot: "autosave"})
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received",
				zap.String("signal", sig.String()),
				zap.Uint64("frame", deps.Clock.Frame()))
			event.Emit(deps.Bus, event.RequestSaveSnapshot{Slot: "autosave"})
			// two extra ticks: one to dispatch the request, one for the
			// persist phase to serve it
			runner.Tick(cfg.World.TickRate)
			runner.Tick(cfg.World.TickRate)
			log.Info("engine stopped")
			return nil
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Defaults(), nil
	}
	return config.Load(path)
}

func loadVehicles(path string) (*data.VehicleTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return data.DefaultVehicleTable(), nil
	}
	return data.LoadVehicleTable(path)
}

func loadCatalogs(path string) (*data.Catalogs, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return data.DefaultCatalogs(), nil
	}
	return data.LoadCatalogs(path)
}

// openStore builds the configured save backend. The returned closer shuts
// down whichever connection the backend holds.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (persist.Store, func(), error) {
	switch cfg.Save.Backend {
	case "memory":
		return persist.NewMemoryStore(), func() {}, nil
	case "sqlite":
		s, err := persist.NewSQLiteStore(cfg.Save.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "postgres":
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, nil, err
		}
		return persist.NewPGStore(db), func() { db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown save backend %q", cfg.Save.Backend)
}

// spawnPlayer creates the active entity: a car parked at the world origin,
// on the terrain surface.
func spawnPlayer(deps *system.Deps) ecs.EntityID {
	spec := deps.Vehicles.Pick("car", deps.Cfg.World.Seed)
	id := deps.World.CreateEntity()
	ground := deps.Terrain.Height(0, 0)
	deps.Stores.Transforms.Set(id, &component.Transform{Pos: mathx.V3(0, ground, 0)})
	deps.Stores.Velocities.Set(id, &component.Velocity{})
	deps.Stores.Controls.Set(id, &component.ControlState{})
	if spec != nil {
		deps.Stores.Vehicles.Set(id, &component.VehicleState{
			Kind:     component.VehicleCar,
			SpecName: spec.Name,
			Fuel:     1,
		})
		deps.Stores.Bodies.Set(id, &physics.RigidBody{
			Kind: physics.BodyDynamic,
			Collider: physics.Collider{
				Shape:       physics.ColliderCuboid,
				HalfExtents: mathx.V3(spec.HalfExtentX, spec.HalfExtentY, spec.HalfExtentZ),
			},
			Mass:           spec.Mass,
			LinearDamping:  spec.LinearDamping,
			AngularDamping: spec.AngularDamping,
			Groups:         physics.VehicleGroups(),
		})
	}
	deps.Active.Set(id)
	return id
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
