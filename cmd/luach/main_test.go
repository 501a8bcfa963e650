package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
	"github.com/tartampluch/go-luach/internal/export"
)

func rangeOpts() engine.CalOptions {
	return engine.CalOptions{
		Start: time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestWriteCalendar(t *testing.T) {
	gen := engine.NewGenerator(nil, nil)

	tests := []struct {
		format string
		want   string
	}{
		{config.FormatText, "2025-03-14 Purim\n"},
		{config.FormatICS, "BEGIN:VCALENDAR"},
		{config.FormatJSON, `"title": "Purim"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeCalendar(&buf, gen, rangeOpts(), export.Options{}, tt.format))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestWriteCalendar_InvalidOptions(t *testing.T) {
	var buf bytes.Buffer
	opts := engine.CalOptions{CandleLighting: true}
	err := writeCalendar(&buf, engine.NewGenerator(nil, nil), opts, export.Options{}, config.FormatText)
	assert.ErrorIs(t, err, engine.ErrNoLocation)
	assert.Zero(t, buf.Len())
}

func TestBuildFeed(t *testing.T) {
	feed, err := buildFeed(engine.NewGenerator(nil, nil), rangeOpts(), export.Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(feed.ICS), "BEGIN:VCALENDAR"))
	assert.Contains(t, string(feed.JSON), "Erev Purim")
}

func TestRunMain_Version(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, config.ExitCodeSuccess, runMain([]string{"--version"}, &buf))
	assert.Contains(t, buf.String(), config.AppName)
}

func TestRunMain_BadFlag(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, config.ExitCodeError, runMain([]string{"--no-such-flag"}, &buf))
}
