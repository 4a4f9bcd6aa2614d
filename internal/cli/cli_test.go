package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cmdbot/internal/config"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunAutonomous(t *testing.T) {
	var out bytes.Buffer
	res, err := RunAutonomous(context.Background(), AutoOptions{}, &out)
	require.NoError(t, err)

	cfg := config.Default()
	assert.Less(t, res.Elapsed, cfg.Autonomous.Timeout)
	assert.GreaterOrEqual(t, res.Elapsed, cfg.Autonomous.Delay)
	assert.LessOrEqual(t, res.Distance, cfg.Autonomous.DriveDistance, "drove back at least the configured distance")
	assert.InDelta(t, cfg.Arm.Presets.Default, res.Arm, cfg.Arm.Tolerance)
	assert.True(t, res.Open)

	require.NotEmpty(t, res.Trace)
	assert.Equal(t, domain.EventCommandInitialize, res.Trace[0].Event)
	assert.Equal(t, "autonomous", res.Trace[0].Command)

	var finished bool
	for _, e := range res.Trace {
		if e.Command == "autonomous" && e.Event == domain.EventCommandFinish {
			finished = true
		}
	}
	assert.True(t, finished)
	assert.Contains(t, out.String(), "Autonomous finished")
}

func TestRunAutonomous_Timeout(t *testing.T) {
	path := writeConfig(t, "short.yaml", "autonomous:\n  timeout: 100ms\n")
	res, err := RunAutonomous(context.Background(), AutoOptions{ConfigPath: path}, nil)
	assert.ErrorIs(t, err, ErrAutonomousTimeout)
	assert.GreaterOrEqual(t, res.Elapsed.Milliseconds(), int64(100))
}

func TestRunAutonomous_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "controllers:\n  driver: 9\n")
	_, err := RunAutonomous(context.Background(), AutoOptions{ConfigPath: path}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPort)
}

func TestRunSimulation_StopsOnCancel(t *testing.T) {
	path := writeConfig(t, "quiet.yaml", "http:\n  addr: \"\"\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunSimulation(ctx, RunOptions{ConfigPath: path, Mode: "teleop"})
	assert.NoError(t, err)
}

func TestRunSimulation_BadMode(t *testing.T) {
	err := RunSimulation(context.Background(), RunOptions{Mode: "warp"})
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestRig(t *testing.T) {
	cfg := config.Default()
	rig, err := NewRig(cfg, nil, nil)
	require.NoError(t, err)

	labels := rig.ButtonLabels()
	assert.Equal(t, "blue_upper", labels[cfg.Buttons.BlueUpper])
	assert.Equal(t, "black_2", labels[cfg.Buttons.Black2])
	assert.Len(t, rig.Steppers(), 6)
	assert.Len(t, rig.Container.Bindings(), 12)
}

func TestCreateLogger(t *testing.T) {
	cfg := config.Default()
	logger, closer, err := createLogger(cfg, false)
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NoError(t, closer.Close())

	cfg.LogFile = filepath.Join(t.TempDir(), "robot.log")
	logger, closer, err = createLogger(cfg, true)
	require.NoError(t, err)
	logger.Debug("Hello")
	require.NoError(t, closer.Close())
	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello")

	cfg.LogLevel = "loud"
	_, _, err = createLogger(cfg, false)
	assert.Error(t, err)
}
