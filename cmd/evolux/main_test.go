package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/evolux/internal/app"
	"go.trai.ch/evolux/internal/core/ports"
	"go.trai.ch/evolux/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestProvider(t *testing.T) (ComponentProvider, *mocks.MockImplementationStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockImplementationStore(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	application := app.New(func(string) ports.ImplementationStore { return mockStore }, mockLogger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}
	return provider, mockStore
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _ := newTestProvider(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	provider, mockStore := newTestProvider(t)

	// An unevolved site makes show fail.
	mockStore.EXPECT().Load(gomock.Any()).Return(nil, nil)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"show", "demo", "add"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}
