// Command hyperiond wires the catalog, world, engine, procedural
// generator, and transport gateway into a runnable server: the thin
// outer layer spec.md §1 treats as an external collaborator of the hard
// core. Adapted from the teacher's main.go (flag-based port, background
// tick loop, signal-driven graceful shutdown).
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperion-sim/hyperion/blueprint"
	"github.com/hyperion-sim/hyperion/config"
	"github.com/hyperion-sim/hyperion/engine"
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/procgen"
	"github.com/hyperion-sim/hyperion/transport"
	"github.com/hyperion-sim/hyperion/world"
)

func main() {
	port := flag.String("port", "8080", "HTTP/WebSocket port")
	catalogPath := flag.String("catalog", "", "path to the catalog YAML document (required)")
	seed := flag.Int64("seed", 42, "universe generation seed")
	numStars := flag.Int("stars", 100, "number of stars to generate")
	numFactions := flag.Int("factions", 5, "number of factions to generate")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if *catalogPath == "" {
		logger.Fatal().Msg("-catalog is required")
	}

	cat, catErrs, err := config.Load(*catalogPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading catalog")
	}
	if len(catErrs) > 0 {
		for _, e := range catErrs {
			logger.Error().Str("kind", string(e.Kind)).Str("subject", e.Subject).Msg(e.Detail)
		}
		logger.Fatal().Int("count", len(catErrs)).Msg("catalog failed validation")
	}

	universe := procgen.GenerateWithTunables(*seed, procgen.Params{NumStars: *numStars, NumFactions: *numFactions}, cat.Tunables.Procedural)
	logger.Info().
		Int("stars", len(universe.Galaxy.Stars)).
		Int("factions", len(universe.Factions)).
		Int64("seed", universe.Seed).
		Msg("universe generated")

	w := world.NewState()
	rng := prng.NewWorld(*seed)
	sim := engine.New(cat, w, rng, logger.With().Str("component", "engine").Logger())
	gateway := transport.NewGateway(w, logger.With().Str("component", "transport").Logger())
	compiler := blueprint.NewCompiler(cat, w, rng)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte("OK"))
	})
	mux.HandleFunc("/ships", newCompileHandler(compiler, logger))
	mux.HandleFunc("/ws", newWebSocketHandler(w, gateway))

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var paused, stop atomic.Bool
	go runTickLoop(sim, gateway, &paused, &stop, cat.Tunables.Timestep, logger)

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("hyperiond listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("shutting down")

	stop.Store(true)
	gateway.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
	logger.Info().Msg("hyperiond stopped")
}

// runTickLoop paces the pure (state, intents) -> (state', events)
// transition at wall-clock dt and flushes events after every tick (§4.4,
// §5 "the broadcaster wakes at ~60 Hz to flush events"). Wall-clock
// pacing is explicitly the caller's concern per §4.4 — this is that
// caller.
func runTickLoop(sim *engine.Engine, gateway *transport.Gateway, paused, stop *atomic.Bool, dt float64, logger zerolog.Logger) {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()
	for range ticker.C {
		if stop.Load() {
			return
		}
		if paused.Load() {
			continue
		}
		sim.RunTick()
		gateway.BroadcastTick()
	}
}
