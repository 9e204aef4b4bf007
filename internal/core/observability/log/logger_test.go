package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "Warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "fatal", want: LevelFatal},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	var l Level
	require.NoError(t, l.UnmarshalText([]byte("warn")))
	require.Equal(t, LevelWarn, l)

	text, err := l.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "warn", string(text))

	require.Error(t, l.UnmarshalText([]byte("loud")))
}

func TestLogger_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core), LevelInfo)

	logger.Debug("hidden")
	logger.Info("visible",
		String("s", "v"),
		Int("i", 3),
		Float64("f", 1.5),
		Uint64("u", 7),
		Bool("b", true),
		Error(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "visible", entry.Message)
	ctx := entry.ContextMap()
	require.Equal(t, "v", ctx["s"])
	require.EqualValues(t, 3, ctx["i"])
	require.Equal(t, 1.5, ctx["f"])
	require.EqualValues(t, 7, ctx["u"])
	require.Equal(t, true, ctx["b"])
	require.Equal(t, "boom", ctx["error"])

	logger.SetLevel(LevelDebug)
	require.Equal(t, LevelDebug, logger.GetLevel())
	logger.Debug("now visible")
	require.Equal(t, 2, logs.Len())
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core), LevelDebug).With(Component("scene"))

	logger.Warn("tagged")
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "scene", logs.All()[0].ContextMap()["component"])
}

func TestProvide_NeverNil(t *testing.T) {
	require.NotNil(t, Provide())
	NewNop().Info("discarded")
}
