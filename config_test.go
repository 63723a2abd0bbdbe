package actiontrack

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-actiontrack/detect"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {

	want := Config{
		MinArea:        12000,
		History:        10,
		SmoothAlpha:    0.45,
		DetectInterval: 6,
	}

	if diff := cmp.Diff(want, DefaultConfig()); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero min area", func(c *Config) { c.MinArea = 0 }, "min_area"},
		{"negative history", func(c *Config) { c.History = -1 }, "history"},
		{"negative interval", func(c *Config) { c.DetectInterval = -6 }, "detect_interval"},
		{"alpha above one", func(c *Config) { c.SmoothAlpha = 3 }, "smooth_alpha"},
		{"negative alpha", func(c *Config) { c.SmoothAlpha = -0.1 }, "smooth_alpha"},
		{"nan alpha", func(c *Config) { c.SmoothAlpha = math.NaN() }, "smooth_alpha"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.field)
		})
	}

	// range bounds and a disabled interval are valid
	cfg := DefaultConfig()
	cfg.SmoothAlpha = 1
	cfg.DetectInterval = 0
	assert.NoError(t, cfg.Validate())

	cfg.SmoothAlpha = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigPartial(t *testing.T) {

	path := writeConfig(t, "action.json", `{"min_area": 8000, "full_body": true}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.MinArea = 8000
	want.FullBody = true

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {

	_, err := LoadConfig(writeConfig(t, "action.yaml", `{}`))
	assert.ErrorContains(t, err, ".json extension")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to stat")

	_, err = LoadConfig(writeConfig(t, "bad.json", `{"history": `))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = LoadConfig(writeConfig(t, "invalid.json", `{"history": 0}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	big := `{"debug": true, "pad": "` + strings.Repeat("x", maxConfigSize) + `"}`
	_, err = LoadConfig(writeConfig(t, "big.json", big))
	assert.ErrorContains(t, err, "too large")
}

func TestParseResolution(t *testing.T) {

	w, h, err := ParseResolution("1280x720")
	require.NoError(t, err)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	w, h, err = ParseResolution(" 640X480 ")
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	for _, bad := range []string{"", "1280", "1280x", "x720", "0x720", "1280x-1", "axb", "1x2x3"} {
		_, _, err := ParseResolution(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCores(t *testing.T) {

	cores, err := ParseCores("4-7")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6, 7}, cores)

	cores, err = ParseCores("0, 2,4-5,2")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 5}, cores)

	for _, bad := range []string{"", "a", "3-1", "-2", "1,,2"} {
		_, err := ParseCores(bad)
		assert.Error(t, err, bad)
	}
}

func TestStats(t *testing.T) {

	start := time.Unix(1000, 0)
	stats := NewStats(time.Second, start)

	stats.Add(Result{Counts: detect.Counts{detect.FaceUpper: 2}})
	stats.Add(Result{Counts: detect.Counts{detect.FaceUpper: 0, detect.UpperBody: 1}})
	stats.Add(Result{Counts: detect.Counts{}})

	_, ok := stats.Tick(start.Add(500 * time.Millisecond))
	assert.False(t, ok, "no report before the period elapses")

	stats.Add(Result{Mode: "tracker", Counts: detect.Counts{}})

	rep, ok := stats.Tick(start.Add(2 * time.Second))
	require.True(t, ok)

	assert.Equal(t, 4, rep.Frames)
	assert.InDelta(t, 2.0, rep.FPS, 1e-9)
	assert.Equal(t, "fps=2.0 face_hit=1 upper_hit=1 full_hit=0", rep.String())
	assert.Equal(t, "fps=2.0 face_count=0 upper_count=0 full_count=0 mode=tracker track_ok=true frame=640x480",
		rep.Debug(640, 480, true))

	// counters reset after a report
	rep, ok = stats.Tick(start.Add(3 * time.Second))
	require.True(t, ok)
	assert.Equal(t, 0, rep.Frames)
	assert.Empty(t, rep.Hits)
}
