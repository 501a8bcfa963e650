package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"HolidayURLBase", config.HolidayURLBase},
		{"UIDNamespace", config.UIDNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 18, config.DefaultCandleLightingMins)
	assert.Equal(t, 40, config.JerusalemCandleLightingMins)
	assert.InDelta(t, 8.5, config.DefaultHavdalahDeg, 1e-9)
	assert.Greater(t, config.YearCacheCapacity, 0)
	assert.Contains(t, config.SupportedLocales, config.DefaultLocale)
	assert.True(t, strings.HasSuffix(config.HolidayURLBase, "/"))
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Luach/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Less(t, config.ServerReadTimeout, config.ServerIdleTimeout)
	assert.Less(t, config.MinHebrewYear, config.MaxHebrewYear)
	assert.Equal(t, 32658, config.MaxHebrewYear)
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := config.Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLocale, s.Calendar.Locale)
	assert.Equal(t, 1, s.Calendar.Years)
	assert.Equal(t, config.DefaultCandleLightingMins, s.Candles.Minutes)
	assert.Nil(t, s.Candles.HavdalahMinutes, "havdalah minutes must stay unset unless given")
	assert.Nil(t, s.Candles.HavdalahDegrees, "havdalah degrees must stay unset unless given")
	assert.Equal(t, config.FormatText, s.Output.Format)
	assert.Equal(t, config.DefaultPort, s.Server.Port)
}

func TestLoad_FlagsOverride(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := config.Load(newFlags(t, "--city", "Jerusalem", "--israel", "--year", "5785", "--hebrew-year", "--havdalah-mins", "0", "-f", "ics", "-s"))
	require.NoError(t, err)

	assert.Equal(t, "Jerusalem", s.Calendar.City)
	assert.True(t, s.Calendar.Israel)
	assert.Equal(t, 5785, s.Calendar.Year)
	assert.True(t, s.Calendar.HebrewYear)
	require.NotNil(t, s.Candles.HavdalahMinutes)
	assert.Equal(t, 0, *s.Candles.HavdalahMinutes, "an explicit zero is preserved")
	assert.Equal(t, config.FormatICS, s.Output.Format)
	assert.True(t, s.Extras.Sedrot)
}

func TestLoad_ConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "luach.yaml")
	content := "calendar:\n  city: London\n  locale: he\ncandles:\n  enabled: true\n  havdalah_degrees: 7.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	t.Setenv("LUACH_CALENDAR_YEARS", "3")

	s, err := config.Load(newFlags(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, "London", s.Calendar.City)
	assert.Equal(t, "he", s.Calendar.Locale)
	assert.True(t, s.Candles.Enabled)
	require.NotNil(t, s.Candles.HavdalahDegrees)
	assert.InDelta(t, 7.5, *s.Candles.HavdalahDegrees, 1e-9)
	assert.Equal(t, 3, s.Calendar.Years)
}

func TestLoad_Errors(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"both havdalah options", []string{"--havdalah-mins", "42", "--havdalah-deg", "8.5"}},
		{"unknown locale", []string{"--locale", "fr"}},
		{"unknown format", []string{"--format", "xml"}},
		{"month out of range", []string{"--month", "14"}},
		{"gregorian year out of range", []string{"--year", "12000"}},
		{"port out of range", []string{"--port", "70000"}},
		{"missing explicit config", []string{"--config", "/nonexistent/luach.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(newFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
