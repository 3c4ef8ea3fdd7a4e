// Command kvs-server runs the TCP-framed kvs service: binds a listener,
// opens a store under the current directory (or an engine chosen on the
// command line), and serves requests until interrupted.
//
// Grounded on original_source/project-4/src/bin/kvs-server.rs: the same
// engine-kind metadata file convention (a stored engine choice a second
// invocation must agree with, or refuse to start) and the same default
// listen address and engine.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/ignitekv/kvs/internal/engine"
	"github.com/ignitekv/kvs/internal/pool"
	"github.com/ignitekv/kvs/internal/server"
	kvserrors "github.com/ignitekv/kvs/pkg/errors"
	"github.com/ignitekv/kvs/pkg/filesys"
	"github.com/ignitekv/kvs/pkg/logger"
	"github.com/ignitekv/kvs/pkg/options"
)

const metadataFile = "metadata"

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", options.DefaultListenAddr, "socket address to bind this server to")
	engineFlag := flag.String("engine", "", "kv engine used by the server (kvs or sled); must match a previous run's choice")
	poolKind := flag.String("pool", string(options.DefaultPoolKind), "worker pool implementation (naive, shared-queue, work-stealing)")
	poolCapacity := flag.Int("pool-capacity", options.DefaultPoolCapacity, "worker count for fixed-size pool kinds")
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		return 1
	}
	defer log.Sync()

	dir, err := filesys.Pwd()
	if err != nil {
		log.Errorw("failed to resolve working directory", "error", err)
		return 1
	}

	kind, err := resolveEngineKind(dir, *engineFlag)
	if err != nil {
		log.Errorw("engine resolution failed", "error", err)
		return 1
	}
	log.Infow("starting kvs-server", "addr", *addr, "engine", kind, "pool", *poolKind)

	workers, err := buildPool(options.PoolKind(*poolKind), *poolCapacity, log)
	if err != nil {
		log.Errorw("failed to build worker pool", "error", err)
		return 1
	}
	defer workers.Shutdown()

	eng, closeEngine, err := openEngine(dir, kind, workers, log)
	if err != nil {
		log.Errorw("failed to open engine", "error", err)
		return 1
	}
	defer closeEngine()

	tcpAddr, err := net.ResolveTCPAddr("tcp", *addr)
	if err != nil {
		log.Errorw("invalid listen address", "addr", *addr, "error", err)
		return 1
	}
	listener, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		log.Errorw("failed to bind listener", "addr", *addr, "error", err)
		return 1
	}

	srv := server.New(listener, server.Config{Engine: eng, Pool: workers, Logger: log})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Infow("shutdown signal received")
		srv.Shutdown()
	}()

	if err := srv.Serve(); err != nil {
		log.Errorw("server exited with error", "error", err)
		return 1
	}
	return 0
}

// resolveEngineKind implements the metadata-file convention: the first run
// of a server against a data directory records which engine it used; every
// later run must either omit --engine or name the same one.
func resolveEngineKind(dir, requested string) (options.EngineKind, error) {
	path := filepath.Join(dir, metadataFile)

	present, err := filesys.Exists(path)
	if err != nil {
		return "", fmt.Errorf("stat engine metadata: %w", err)
	}

	if !present {
		kind := options.EngineKind(requested)
		if kind == "" {
			kind = options.DefaultEngineKind
		}
		if kind != options.EngineKindKvs && kind != options.EngineKindSled {
			return "", kvserrors.NewFieldFormatError("engine", kind, "kvs or sled")
		}
		if err := filesys.WriteFile(path, 0644, []byte(kind)); err != nil {
			return "", fmt.Errorf("write engine metadata: %w", err)
		}
		return kind, nil
	}

	contents, err := filesys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read engine metadata: %w", err)
	}
	stored := options.EngineKind(strings.TrimSpace(string(contents)))

	if requested != "" && options.EngineKind(requested) != stored {
		return "", kvserrors.NewConfigurationValidationError("engine",
			fmt.Sprintf("data directory was previously opened with engine %q, cannot reopen with %q", stored, requested))
	}
	return stored, nil
}

func buildPool(kind options.PoolKind, capacity int, log *zap.SugaredLogger) (pool.Pool, error) {
	switch kind {
	case options.PoolKindNaive:
		return pool.NewNaivePool(capacity), nil
	case options.PoolKindWorkStealing:
		return pool.NewWorkStealingPool(capacity, log)
	case options.PoolKindSharedQueue, "":
		return pool.NewSharedQueuePool(capacity, log), nil
	default:
		return nil, kvserrors.NewFieldFormatError("pool", kind, "naive, shared-queue, or work-stealing")
	}
}

func openEngine(dir string, kind options.EngineKind, workers pool.Pool, log *zap.SugaredLogger) (engine.Engine, func(), error) {
	switch kind {
	case options.EngineKindSled:
		db, err := engine.OpenBolt(filepath.Join(dir, "kvs.bolt"))
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	default:
		store, err := engine.Open(dir, engine.Config{
			CompactionThreshold: options.DefaultCompactionThreshold,
			Pool:                workers,
			Logger:              log,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}
