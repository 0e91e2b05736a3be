package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tokenscope/core/server"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires an address", func(t *testing.T) {
		t.Parallel()
		_, err := server.NewFromConfig(server.Config{})
		assert.ErrorIs(t, err, server.ErrMissingAddress)
	})

	t.Run("builds a server from config", func(t *testing.T) {
		t.Parallel()
		srv, err := server.NewFromConfig(server.Config{
			Addr:            "127.0.0.1:0",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			IdleTimeout:     time.Second,
			ShutdownTimeout: time.Second,
		})
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("stops cleanly on context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		ctx, cancel := context.WithCancel(context.Background())
		g, ctx := errgroup.WithContext(ctx)
		g.Go(srv.Run(ctx, handler))

		time.Sleep(100 * time.Millisecond)
		cancel()

		assert.NoError(t, g.Wait())
	})

	t.Run("rejects a second start", func(t *testing.T) {
		t.Parallel()

		srv := server.New("127.0.0.1:0")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			_ = srv.Start(ctx, http.NotFoundHandler())
		}()
		time.Sleep(100 * time.Millisecond)

		err := srv.Start(ctx, http.NotFoundHandler())
		assert.ErrorIs(t, err, server.ErrServerAlreadyRunning)
	})
}
