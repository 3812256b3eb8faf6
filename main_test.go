package main

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("life", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlagsOverridesOnlySetFlags(t *testing.T) {
	opts, err := parseFlags(newFlagSet(), []string{
		"-width", "90", "-bounded", "-renderer", "plain", "-frame-rate", "25ms", "-config", "life.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, "life.yaml", opts.configPath)
	assert.Equal(t, ".env", opts.envFile)

	base := utils.DefaultConfig()
	base.Height = 33
	base.Pattern = model.SelectAcorn

	cfg := opts.applyOverrides(base)
	assert.Equal(t, 90, cfg.Width)
	assert.Equal(t, 33, cfg.Height, "unset flags keep file values")
	assert.Equal(t, model.SelectAcorn, cfg.Pattern)
	assert.True(t, cfg.Bounded)
	assert.Equal(t, utils.RendererPlain, cfg.Renderer)
	assert.Equal(t, 25*time.Millisecond, cfg.FrameRate)
}

func TestParseFlagsCanClearBooleans(t *testing.T) {
	opts, err := parseFlags(newFlagSet(), []string{"-ages=false", "-restart"})
	require.NoError(t, err)

	base := utils.DefaultConfig()
	cfg := opts.applyOverrides(base)
	assert.False(t, cfg.TrackAges)
	assert.True(t, cfg.AutoRestart)
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	_, err := parseFlags(newFlagSet(), []string{"-warp", "9"})
	assert.Error(t, err)
}

func TestResolveConfig(t *testing.T) {
	now := time.Unix(1700000000, 0)

	cfg := utils.DefaultConfig()
	cfg.Screen = 0
	resolved, err := resolveConfig(cfg, now)
	require.NoError(t, err)
	assert.Equal(t, 64, resolved.Width)
	assert.Equal(t, 48, resolved.Height)
	assert.Equal(t, model.SelectGlider, resolved.Pattern)
	assert.Equal(t, now.UnixNano(), resolved.Seed)

	cfg = utils.DefaultConfig()
	cfg.Seed = 42
	cfg.Pattern = model.SelectRandom
	resolved, err = resolveConfig(cfg, now)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resolved.Seed)
	assert.Equal(t, 40, resolved.Width)

	cfg.RandomDensity = 2
	_, err = resolveConfig(cfg, now)
	assert.True(t, errors.Is(err, utils.ErrInvalidConfig))
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := loadConfig("", log)
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile("config.yaml", []byte("width: 12\n"), 0o600))
	cfg, err = loadConfig("", log)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)

	_, err = loadConfig("absent.json", log)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LIFE_DOTENV_TEST=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LIFE_DOTENV_TEST") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("LIFE_DOTENV_TEST"))
}

func TestMenuOptions(t *testing.T) {
	assert.Len(t, screenOptions(), len(utils.ScreenSizes))
	assert.Len(t, patternOptions(), len(model.Selections()))
	assert.True(t, menuKeyMap().Quit.Enabled())
}
