package cli

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/gardenwatch/internal/core/category"
)

// fakeRunner blocks until its context is done.
type fakeRunner struct {
	err     error
	started chan struct{}
}

func (r *fakeRunner) Run(ctx context.Context) error {
	close(r.started)
	if r.err != nil {
		return r.err
	}
	<-ctx.Done()
	return nil
}

// fakeServer blocks in Start until Shutdown is called, like http.Server.
type fakeServer struct {
	startErr error
	stopped  chan struct{}
	once     sync.Once

	shutdownCalls int
	mu            sync.Mutex
}

func newFakeServer() *fakeServer {
	return &fakeServer{stopped: make(chan struct{})}
}

func (s *fakeServer) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stopped
	return nil
}

func (s *fakeServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdownCalls++
	s.mu.Unlock()
	s.once.Do(func() { close(s.stopped) })
	return nil
}

func TestRunWatch_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &fakeRunner{started: make(chan struct{})}
	srv := newFakeServer()

	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, r, srv) }()

	<-r.started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not return after cancel")
	}
	assert.Equal(t, 1, srv.shutdownCalls)
}

func TestRunWatch_WithoutServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &fakeRunner{started: make(chan struct{})}

	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, r, nil) }()

	<-r.started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not return after cancel")
	}
}

func TestRunWatch_ServerFailureStopsCoordinator(t *testing.T) {
	r := &fakeRunner{started: make(chan struct{})}
	srv := newFakeServer()
	srv.startErr = errors.New("listen tcp 127.0.0.1:8787: bind: address already in use")

	err := runWatch(context.Background(), r, srv)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server stopped")
	assert.Contains(t, err.Error(), "address already in use")
}

func TestRunWatch_CoordinatorFailure(t *testing.T) {
	boom := errors.New("boom")
	r := &fakeRunner{started: make(chan struct{}), err: boom}

	err := runWatch(context.Background(), r, newFakeServer())

	require.ErrorIs(t, err, boom)
}

func TestCatalogCategories(t *testing.T) {
	all, err := catalogCategories(nil)
	require.NoError(t, err)
	assert.Equal(t, category.All(), all)

	eggs, err := catalogCategories([]string{"eggs"})
	require.NoError(t, err)
	assert.Equal(t, []category.Category{category.Eggs}, eggs)

	_, err = catalogCategories([]string{"pets"})
	require.Error(t, err)
}

func TestItemName(t *testing.T) {
	assert.Equal(t, "Master Sprinkler", itemName([]string{"Master", "Sprinkler"}))
	assert.Equal(t, "Bug Egg", itemName([]string{" Bug Egg "}))
}

func TestItemArgs(t *testing.T) {
	all := false
	args := itemArgs(&all)
	cmd := &cobra.Command{}

	assert.NoError(t, args(cmd, []string{"Master", "Sprinkler"}))
	assert.Error(t, args(cmd, nil))

	all = true
	assert.NoError(t, args(cmd, []string{"seeds"}))
	assert.Error(t, args(cmd, []string{"seeds", "gears"}))
	assert.Error(t, args(cmd, nil))
}

func TestNotifyAllFlag(t *testing.T) {
	for _, name := range []string{"add", "remove"} {
		sub, _, err := NotifyCmd().Find([]string{name})
		require.NoError(t, err)
		assert.NotNil(t, sub.Flags().Lookup("all"), "%s should accept --all", name)
	}
}

func TestCommandStructure(t *testing.T) {
	notify := NotifyCmd()

	var subs []string
	for _, sub := range notify.Commands() {
		subs = append(subs, sub.Name())
	}
	assert.ElementsMatch(t, []string{"add", "remove", "list", "clear"}, subs)

	watch := WatchCmd()
	require.NotNil(t, watch.Flags().Lookup("serve"))
	require.NotNil(t, watch.Flags().Lookup("addr"))

	for _, cmd := range []*cobra.Command{StockCmd(), RefreshCmd(), NextCmd(), CatalogCmd()} {
		assert.NotEmpty(t, cmd.Short, "%s should have a Short description", cmd.Name())
	}
}
