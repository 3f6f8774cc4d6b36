package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lessen/internal/app"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func components(t *testing.T, writer *mocks.MockOutputWriter, logger *mocks.MockLogger) ComponentProvider {
	t.Helper()
	cfg := &domain.Config{OutputRoot: "/project/stylesheets/play-less"}
	application := app.New(cfg, nil, nil, nil, writer, nil, nil, nil, logger)
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	stdout := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer),
		components(t, mocks.NewMockOutputWriter(ctrl), mocks.NewMockLogger(ctrl)))
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "lessen version")
}

// TestRun_ProviderError verifies that provider failures are reported on stderr.
func TestRun_ProviderError(t *testing.T) {
	stderr := new(bytes.Buffer)
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("config broken")
	}

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "Error: config broken\n", stderr.String())
}

// TestRun_CommandError verifies that command errors are logged and return 1.
func TestRun_CommandError(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockOutputWriter(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	failure := errors.New("permission denied")
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	writer.EXPECT().Clear().Return(failure)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, failure)
	})

	exitCode := run(context.Background(), []string{"clean"}, new(bytes.Buffer), new(bytes.Buffer), components(t, writer, logger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_Options verifies that options are applied to the app.
func TestRun_Options(t *testing.T) {
	ctrl := gomock.NewController(t)
	applied := false

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer),
		components(t, mocks.NewMockOutputWriter(ctrl), mocks.NewMockLogger(ctrl)),
		func(*app.App) { applied = true })
	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}
