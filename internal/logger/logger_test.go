package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/minimalpairs/internal/logger"
)

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
		ok   bool
	}{
		{"debug", logger.DEBUG, true},
		{" INFO ", logger.INFO, true},
		{"warning", logger.WARN, true},
		{"ERROR", logger.ERROR, true},
		{"loud", logger.INFO, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.LookupLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithCaller(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  shown 1")
}

func TestLogger_FieldsArePrefixedAndSorted(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.DEBUG), logger.WithCaller(false))

	log := base.WithPrefix("quiz").WithFields(map[string]any{"b": 2, "a": 1}).WithError(errors.New("nope"))
	log.Debug("hello")
	base.Debug("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "[quiz] hello a=1 b=2 error=nope"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "plain"), "parent logger is unchanged")
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithCaller(false)).WithField("request_id", "r1")

	ctx := logger.NewContext(context.Background(), log)
	logger.FromContext(ctx).Info("from ctx")

	assert.Contains(t, buf.String(), "request_id=r1")
	assert.Equal(t, logger.Default(), logger.FromContext(context.Background()))
}
