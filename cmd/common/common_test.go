package common

import (
	"bytes"
	"flag"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger(out *bytes.Buffer) *Logger {
	l := NewLogger()
	l.Out = out
	l.ShowColors = false
	return l
}

func TestLogger_LevelsAndModes(t *testing.T) {
	var out bytes.Buffer
	l := quietLogger(&out)
	l.ShowEmojis = false

	l.Info("hello %d", 1)
	l.Debug("hidden")
	l.Warn("careful")
	assert.Equal(t, "[INFO]  hello 1\n[WARN]  careful\n", out.String())

	out.Reset()
	l.Level = LogLevelDebug
	l.Debug("shown")
	assert.Equal(t, "[DEBUG] shown\n", out.String())

	out.Reset()
	l.SetSilentMode(true)
	l.Info("muted")
	l.Success("muted")
	l.Header("muted")
	l.Error("still printed")
	assert.Equal(t, "[ERROR] still printed\n", out.String())
}

func TestLogger_Header(t *testing.T) {
	var out bytes.Buffer
	l := quietLogger(&out)

	l.Header("run")
	assert.Equal(t, "\n🧬 RUN\n========\n", out.String())
}

func TestSetupLogger(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-verbose", "-no-emojis", "-no-colors", "-silent"}))

	l := NewLogger()
	SetupLogger(l, flags)
	assert.Equal(t, LogLevelDebug, l.Level)
	assert.False(t, l.ShowEmojis)
	assert.False(t, l.ShowColors)
	assert.True(t, l.SilentMode)
	assert.Equal(t, ".env", *flags.EnvFile)
}

func TestFlagValidator(t *testing.T) {
	v := NewFlagValidator().
		ValidateFloat("mutation-rate", 0.5, 0, 1).
		ValidateInt("population", 10, 1, 1000)
	assert.False(t, v.HasErrors())
	assert.NoError(t, v.GetError())

	v.ValidateFloat("crossover-rate", math.NaN(), 0, 1).
		ValidateChoice("selection", "lottery", []string{"roulette", "tournament"}).
		ValidateFile("config", filepath.Join(t.TempDir(), "missing.json"), false).
		ValidateFile("required", "", true)

	require.True(t, v.HasErrors())
	assert.Len(t, v.GetErrors(), 4)
	assert.Contains(t, v.GetError().Error(), "selection must be one of [roulette, tournament], got: lottery")

	var out bytes.Buffer
	v.PrintErrors(&out)
	assert.Contains(t, out.String(), "required is required")
}

func TestFlagValidator_RatesAndSizes(t *testing.T) {
	v := NewFlagValidator().
		ValidateRate("mutation-rate", 1).
		ValidatePositive("population", 1)
	assert.False(t, v.HasErrors())

	v.ValidateRate("crossover-rate", 1.5).
		ValidatePositive("length", 0).
		AddError("custom problem")
	assert.Equal(t, []string{
		"crossover-rate must be between 0.0000 and 1.0000, got: 1.5000",
		"length must be positive, got: 0",
		"custom problem",
	}, v.GetErrors())
	assert.Contains(t, v.GetError().Error(), "validation errors:\n  - crossover-rate")
}

func TestCheckHelpAndVersion(t *testing.T) {
	fs := flag.NewFlagSet("evolve", flag.ContinueOnError)
	flags := RegisterCommonFlags(fs)
	formatter := NewUsageFormatter("evolve", "bit string genetic algorithm").
		AddExample("evolve -fitness kicker -length 6", "Escape the all-ones local optimum")

	require.NoError(t, fs.Parse(nil))
	var out bytes.Buffer
	assert.False(t, CheckHelpAndVersion(&out, flags, formatter, fs))

	require.NoError(t, fs.Parse([]string{"-version"}))
	assert.True(t, CheckHelpAndVersion(&out, flags, formatter, fs))
	assert.Contains(t, out.String(), "evolve v"+ProjectVersion)

	*flags.Version = false
	*flags.Help = true
	out.Reset()
	assert.True(t, CheckHelpAndVersion(&out, flags, formatter, fs))
	assert.Contains(t, out.String(), "Escape the all-ones local optimum")
	assert.Contains(t, out.String(), "-no-emojis")
}

func TestEnvLoader(t *testing.T) {
	var out bytes.Buffer
	l := quietLogger(&out)
	l.Level = LogLevelDebug
	loader := NewEnvLoader(l)

	assert.NoError(t, loader.LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
	assert.Contains(t, out.String(), "not found")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GA_TEST_LOADER=on\n"), 0644))
	t.Setenv("GA_TEST_LOADER", "")
	os.Unsetenv("GA_TEST_LOADER")

	require.NoError(t, loader.LoadEnvFile(path))
	assert.Equal(t, "on", loader.GetEnvWithDefault("GA_TEST_LOADER", "off"))
	assert.Equal(t, "off", loader.GetEnvWithDefault("GA_TEST_LOADER_MISSING", "off"))
	assert.Contains(t, out.String(), "(1 keys)")
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("results", "run.xlsx"), ResolvePath("run", "results", ".xlsx"))
	assert.Equal(t, "out/run.xlsx", ResolvePath("out/run.xlsx", "results", ".xlsx"))
	assert.Equal(t, "", ResolvePath("", "results", ".xlsx"))
}
