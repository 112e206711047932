package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/konstantinfoerster/deck-diff-go/internal/api"
	mock_api "github.com/konstantinfoerster/deck-diff-go/internal/api/mocks"
	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerDefaultAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := api.NewHandler(mock_api.NewMockCardFinder(ctrl), mock_api.NewMockDeckService(ctrl), "dev")

	srv := api.NewServer(config.HTTP{}, h)

	assert.Equal(t, "127.0.0.1:5678", srv.Addr())
}

func TestRunStopsWhenContextIsDone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := api.NewHandler(mock_api.NewMockCardFinder(ctrl), mock_api.NewMockDeckService(ctrl), "dev")
	srv := api.NewServer(config.HTTP{Address: "127.0.0.1:0", ShutdownTimeout: time.Second}, h)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunFailsOnInvalidAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := api.NewHandler(mock_api.NewMockCardFinder(ctrl), mock_api.NewMockDeckService(ctrl), "dev")
	srv := api.NewServer(config.HTTP{Address: "127.0.0.1:-1"}, h)

	err := srv.Run(t.Context())

	require.Error(t, err)
}
