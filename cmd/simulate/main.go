// Package main runs one battle from the command line and prints the log and
// summary as text or JSON.
//
// Usage:
//
//	simulate -p1 pikachu:50:thunderbolt,thunder-wave,quick-attack,iron-tail \
//	         -p2 squirtle:50:water-gun,bite,tackle,surf -seed 42 -strategy1 greedy
//	simulate -battle battles/rivals.yaml -json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pokesim/internal/config"
	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/game/pokedex"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/observability"
	"github.com/cory-johannsen/pokesim/internal/scripting"
	"github.com/cory-johannsen/pokesim/internal/simulator"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	battlePath := flag.String("battle", "", "YAML battle file with pokemon1, pokemon2 and optional max_turns")
	p1 := flag.String("p1", "", "side 1 as name:level:move1,move2,move3,move4")
	p2 := flag.String("p2", "", "side 2 as name:level:move1,move2,move3,move4")
	seedFlag := flag.String("seed", "", "replay seed; empty draws a fresh one")
	strategy1 := flag.String("strategy1", "", "side 1 strategy name, .lua file, or \"random\"")
	strategy2 := flag.String("strategy2", "", "side 2 strategy name, .lua file, or \"random\"")
	maxTurns := flag.Int("max-turns", 0, "turn cap override (0 = config)")
	asJSON := flag.Bool("json", false, "print the outcome as JSON")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	battleCfg, err := buildConfig(*battlePath, *p1, *p2, *maxTurns)
	if err != nil {
		logger.Fatal("building battle", zap.Error(err))
	}
	seed, err := parseSeed(*seedFlag)
	if err != nil {
		logger.Fatal("parsing seed", zap.Error(err))
	}

	dex, err := pokedex.LoadDirectory(cfg.Dex.Dir)
	if err != nil {
		logger.Fatal("loading dex", zap.Error(err))
	}
	mgr := scripting.NewManager(logger, cfg.Scripting.InstructionLimit)
	defer mgr.Close()
	if err := mgr.LoadDir(cfg.Scripting.StrategyDir); err != nil {
		logger.Warn("no strategies loaded", zap.Error(err))
	}
	s1, err := resolveStrategy(mgr, *strategy1)
	if err != nil {
		logger.Fatal("loading strategy1", zap.Error(err))
	}
	s2, err := resolveStrategy(mgr, *strategy2)
	if err != nil {
		logger.Fatal("loading strategy2", zap.Error(err))
	}

	engine := battle.NewEngine(dex, logger, cfg.Battle.MaxTurns)
	sim := simulator.New(engine, mgr, logger, simulator.WithDefaultStrategy(cfg.Battle.DefaultStrategy))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	out, err := sim.Run(ctx, simulator.Request{Config: battleCfg, Seed: seed, Strategy1: s1, Strategy2: s2})
	if err != nil {
		logger.Fatal("running battle", zap.Error(err))
	}

	if *asJSON {
		err = writeJSON(os.Stdout, out)
	} else {
		err = writeText(os.Stdout, out)
	}
	if err != nil {
		logger.Fatal("writing output", zap.Error(err))
	}
	logger.Debug("simulate finished", zap.Duration("elapsed", time.Since(start)))
}

// buildConfig reads the battle from a YAML file, or from the -p1/-p2 flags
// when no file is given.
func buildConfig(path, p1, p2 string, maxTurns int) (battle.Config, error) {
	var cfg battle.Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading battle file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing battle file %s: %w", path, err)
		}
	} else {
		if p1 == "" || p2 == "" {
			return cfg, errors.New("either -battle or both -p1 and -p2 are required")
		}
		var err error
		if cfg.Pokemon1, err = parseCombatant(p1); err != nil {
			return cfg, fmt.Errorf("-p1: %w", err)
		}
		if cfg.Pokemon2, err = parseCombatant(p2); err != nil {
			return cfg, fmt.Errorf("-p2: %w", err)
		}
	}
	if maxTurns > 0 {
		cfg.MaxTurns = maxTurns
	}
	return cfg, nil
}

// parseCombatant parses name:level:move1,move2,move3,move4.
func parseCombatant(s string) (battle.CombatantConfig, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return battle.CombatantConfig{}, fmt.Errorf("want name:level:moves, got %q", s)
	}
	level, err := strconv.Atoi(parts[1])
	if err != nil {
		return battle.CombatantConfig{}, fmt.Errorf("level %q: %w", parts[1], err)
	}
	var moves []string
	for _, m := range strings.Split(parts[2], ",") {
		if m = strings.TrimSpace(m); m != "" {
			moves = append(moves, m)
		}
	}
	return battle.CombatantConfig{Name: strings.TrimSpace(parts[0]), Level: level, Moves: moves}, nil
}

func parseSeed(s string) (*uint64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// resolveStrategy loads a .lua path into mgr under its base name and returns
// that name; other values pass through unchanged.
func resolveStrategy(mgr *scripting.Manager, s string) (string, error) {
	if !strings.HasSuffix(s, ".lua") {
		return s, nil
	}
	name := strings.TrimSuffix(filepath.Base(s), ".lua")
	if err := mgr.LoadFile(name, s); err != nil {
		return "", err
	}
	return name, nil
}

func writeJSON(w io.Writer, out simulator.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, out simulator.Outcome) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Battle %s (seed %d)\n", out.ID, out.Seed)
	for _, rec := range out.Result.Log {
		fmt.Fprintf(&b, "\n-- Turn %d --\n", rec.Turn)
		for _, e := range rec.Events {
			fmt.Fprintln(&b, e.Message)
		}
		for _, s := range rec.Snapshots {
			fmt.Fprintf(&b, "  %s: %d/%d HP", s.Name, s.HP, s.MaxHP)
			if s.Status != status.None {
				fmt.Fprintf(&b, " [%s]", s.Status)
			}
			b.WriteString("\n")
		}
	}

	sum := out.Summary
	fmt.Fprintf(&b, "\nWinner: %s (%s after %d turns)\n", sum.Winner, sum.Reason, sum.Duration)
	for _, side := range sum.Sides {
		fmt.Fprintf(&b, "  %s: dealt %d, took %d, crits %d, misses %d\n",
			side.Name, side.DamageDealt, side.DamageTaken, side.Criticals, side.Misses)
	}
	if len(sum.KeyMoments) > 0 {
		b.WriteString("Key moments:\n")
		for _, m := range sum.KeyMoments {
			fmt.Fprintf(&b, "  %s\n", m)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
