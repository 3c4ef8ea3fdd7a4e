package options

const (
	// DefaultDataDir is where the store keeps its segment files when no
	// directory is given explicitly.
	DefaultDataDir = "/var/lib/kvs"

	// DefaultCompactionThreshold is the uncompacted-byte watermark that
	// triggers compaction (design value: 2 MiB).
	DefaultCompactionThreshold int64 = 2 * 1024 * 1024

	// DefaultListenAddr is the address kvs-server binds when none is given.
	DefaultListenAddr = "127.0.0.1:4000"

	// DefaultEngineKind selects the primary log-structured engine.
	DefaultEngineKind = EngineKindKvs

	// DefaultPoolKind selects the fixed shared-queue worker pool.
	DefaultPoolKind = PoolKindSharedQueue

	// DefaultPoolCapacity is the worker count for pool kinds with a fixed
	// size (shared-queue, work-stealing); naive ignores it.
	DefaultPoolCapacity = 4
)

// EngineKind names which Engine implementation a store opens.
type EngineKind string

const (
	EngineKindKvs  EngineKind = "kvs"
	EngineKindSled EngineKind = "sled"
)

// PoolKind names which Pool implementation a server dispatches tasks on.
type PoolKind string

const (
	PoolKindNaive        PoolKind = "naive"
	PoolKindSharedQueue  PoolKind = "shared-queue"
	PoolKindWorkStealing PoolKind = "work-stealing"
)

// defaultOptions holds the baseline configuration for a kvs instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactionThreshold: DefaultCompactionThreshold,
	ListenAddr:          DefaultListenAddr,
	EngineKind:          DefaultEngineKind,
	PoolKind:            DefaultPoolKind,
	PoolCapacity:        DefaultPoolCapacity,
}

// NewDefaultOptions returns a copy of the baseline configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
