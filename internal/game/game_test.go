package game

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/hexboard/internal/board"
	"github.com/samdwyer/hexboard/internal/generator"
	"github.com/samdwyer/hexboard/internal/ports"
	"github.com/samdwyer/hexboard/internal/rules"
)

func seeded(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateEmpty, "empty"},
		{StateReady, "ready"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.state.String())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Rules.PreventHighAdjacency)
	assert.True(t, cfg.Rules.PreventExtremeAdjacency)
	assert.False(t, cfg.Rules.PreventClumping)
	assert.Equal(t, rules.ClumpAdjacent, cfg.Rules.ClumpMode)
	assert.False(t, cfg.FixedPorts)
	assert.Equal(t, 150000, cfg.MaxAttempts)
	assert.Zero(t, cfg.Seed)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvPreventHigh, "false")
	t.Setenv(EnvPreventClumping, "true")
	t.Setenv(EnvClumpMode, "groups")
	t.Setenv(EnvFixedPorts, "1")
	t.Setenv(EnvMaxAttempts, "5000")
	t.Setenv(EnvSeed, "77")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.Rules.PreventHighAdjacency)
	assert.True(t, cfg.Rules.PreventExtremeAdjacency, "unset variables keep their default")
	assert.True(t, cfg.Rules.PreventClumping)
	assert.Equal(t, rules.ClumpGroups, cfg.Rules.ClumpMode)
	assert.True(t, cfg.FixedPorts)
	assert.Equal(t, 5000, cfg.MaxAttempts)
	assert.Equal(t, int64(77), cfg.Seed)
}

func TestConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvPreventExtreme, "sometimes"},
		{EnvClumpMode, "diagonal"},
		{EnvMaxAttempts, "lots"},
		{EnvSeed, "0x"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := ConfigFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestNewBoard(t *testing.T) {
	g, err := New(seeded(42))
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, g.State())
	assert.Nil(t, g.Current())

	b, err := g.NewBoard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, StateReady, g.State())
	assert.Same(t, b, g.Current())

	require.NoError(t, b.Layout.Validate(board.MustStandard()))
	assert.Len(t, b.Ports, 9)
	assert.NotEmpty(t, b.Intersections)
	assert.LessOrEqual(t, len(b.Intersections), 54)
	assert.Positive(t, b.Attempts)

	total := 0
	for _, r := range board.Resources {
		total += b.Resources[r]
	}
	assert.Equal(t, 58, total, "pip weight of the standard number pool")
}

func TestNewBoardReproducible(t *testing.T) {
	g1, err := New(seeded(2024))
	require.NoError(t, err)
	g2, err := New(seeded(2024))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		b1, err := g1.NewBoard(context.Background())
		require.NoError(t, err)
		b2, err := g2.NewBoard(context.Background())
		require.NoError(t, err)

		assert.Equal(t, b1.ID, b2.ID, "board %d", i)
		assert.Equal(t, b1.Layout, b2.Layout, "board %d", i)
		assert.Equal(t, b1.Ports, b2.Ports, "board %d", i)
	}
}

func TestSetConfigReseeds(t *testing.T) {
	fresh, err := New(seeded(77))
	require.NoError(t, err)
	want, err := fresh.NewBoard(context.Background())
	require.NoError(t, err)

	g, err := New(seeded(1))
	require.NoError(t, err)
	_, err = g.NewBoard(context.Background())
	require.NoError(t, err)

	g.SetConfig(seeded(77))
	got, err := g.NewBoard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Layout, got.Layout)
	assert.Equal(t, want.Ports, got.Ports)

	// Same seed again: the sequence carries on instead of restarting.
	g.SetConfig(seeded(77))
	next, err := g.NewBoard(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, want.ID, next.ID)
}

func TestNewBoardFixedPorts(t *testing.T) {
	cfg := seeded(5)
	cfg.FixedPorts = true
	g, err := New(cfg)
	require.NoError(t, err)

	b1, err := g.NewBoard(context.Background())
	require.NoError(t, err)
	b2, err := g.NewBoard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, b1.Ports, b2.Ports)
	assert.NotEqual(t, b1.ID, b2.ID)
	assert.Equal(t, ports.Generic, b1.Ports[0].Type)
	assert.Equal(t, ports.Type("ore"), b1.Ports[8].Type)
}

func TestNewBoardFailureKeepsPrevious(t *testing.T) {
	g, err := New(seeded(9))
	require.NoError(t, err)

	first, err := g.NewBoard(context.Background())
	require.NoError(t, err)

	cfg := g.Config()
	cfg.MaxAttempts = 0
	g.SetConfig(cfg)

	b, err := g.NewBoard(context.Background())
	require.ErrorIs(t, err, generator.ErrGenerationExhausted)
	assert.Nil(t, b)
	assert.Same(t, first, g.Current())
	assert.Equal(t, StateReady, g.State())
}

func TestNewBoardInvalidConfiguration(t *testing.T) {
	cfg := seeded(1)
	cfg.MaxAttempts = -5
	g, err := New(cfg)
	require.NoError(t, err)

	_, err = g.NewBoard(context.Background())
	require.ErrorIs(t, err, generator.ErrInvalidConfiguration)
	assert.NotErrorIs(t, err, generator.ErrGenerationExhausted)
	assert.Equal(t, StateEmpty, g.State())
}

func TestBoardJSON(t *testing.T) {
	g, err := New(seeded(3))
	require.NoError(t, err)
	b, err := g.NewBoard(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded struct {
		ID     string `json:"id"`
		Layout []struct {
			ID      int    `json:"id"`
			Terrain string `json:"terrain"`
			Number  *int   `json:"number"`
		} `json:"layout"`
		Ports []struct {
			Slot  int    `json:"slot"`
			Type  string `json:"type"`
			Angle int    `json:"angle"`
		} `json:"ports"`
		Intersections []struct {
			X        int `json:"x"`
			Y        int `json:"y"`
			PipScore int `json:"pipScore"`
		} `json:"intersections"`
		Resources map[string]int `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, b.ID.String(), decoded.ID)
	require.Len(t, decoded.Layout, 19)
	nulls := 0
	for _, c := range decoded.Layout {
		if c.Number == nil {
			nulls++
			assert.Equal(t, "desert", c.Terrain)
		}
	}
	assert.Equal(t, 1, nulls)
	assert.Len(t, decoded.Ports, 9)
	assert.Len(t, decoded.Intersections, len(b.Intersections))
	assert.Len(t, decoded.Resources, 5)
}
