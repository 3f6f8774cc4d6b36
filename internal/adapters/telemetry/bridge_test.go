package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessen/internal/adapters/telemetry"
	"go.trai.ch/lessen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_LogsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var logged []string
	mockLogger.EXPECT().Debug(gomock.Any()).DoAndReturn(func(msg string) {
		logged = append(logged, msg)
	}).Times(2)

	tp := telemetry.NewProvider(mockLogger)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := telemetry.NewOTelTracer(tp, "test")

	_, span := tracer.Start(context.Background(), "lessen.compile")
	span.SetAttribute("path", "/css/main.less")
	span.End()

	_, failing := tracer.Start(context.Background(), "lessen.resolve")
	failing.RecordError(errors.New("boom"))
	failing.End()

	require.Len(t, logged, 2)
	assert.True(t, strings.HasPrefix(logged[0], "span lessen.compile took "))
	assert.True(t, strings.HasSuffix(logged[0], " path=/css/main.less"))
	assert.True(t, strings.HasSuffix(logged[1], " error=boom"))
}

func TestBridge_NilLogger(t *testing.T) {
	tp := telemetry.NewProvider(nil)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := telemetry.NewOTelTracer(tp, "test").Start(context.Background(), "quiet")
	span.End()
}
