package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := NewDefaultOptions()
	require.Equal(t, DefaultDataDir, o.DataDir)
	require.Equal(t, DefaultCompactionThreshold, o.CompactionThreshold)
	require.Equal(t, DefaultListenAddr, o.ListenAddr)
	require.Equal(t, EngineKindKvs, o.EngineKind)
	require.Equal(t, PoolKindSharedQueue, o.PoolKind)
}

func TestApplyOverrides(t *testing.T) {
	o := Apply(
		WithDataDir("/tmp/data"),
		WithCompactionThreshold(1024),
		WithListenAddr("0.0.0.0:9000"),
		WithEngineKind(EngineKindSled),
		WithPoolKind(PoolKindNaive),
		WithPoolCapacity(8),
	)

	require.Equal(t, "/tmp/data", o.DataDir)
	require.Equal(t, int64(1024), o.CompactionThreshold)
	require.Equal(t, "0.0.0.0:9000", o.ListenAddr)
	require.Equal(t, EngineKindSled, o.EngineKind)
	require.Equal(t, PoolKindNaive, o.PoolKind)
	require.Equal(t, 8, o.PoolCapacity)
}

func TestBlankAndInvalidOverridesAreIgnored(t *testing.T) {
	o := Apply(
		WithDataDir("   "),
		WithCompactionThreshold(-1),
		WithListenAddr(""),
		WithPoolCapacity(0),
	)
	require.Equal(t, NewDefaultOptions(), o)
}
