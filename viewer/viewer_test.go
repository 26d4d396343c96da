package viewer

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	virtualgallery "github.com/bentance/virtualgallery"
	"github.com/bentance/virtualgallery/engine"
	"github.com/bentance/virtualgallery/errors"
	"github.com/bentance/virtualgallery/gallery"
	"github.com/bentance/virtualgallery/renderer"
)

func testGalleryConfig() *gallery.Config {
	return &gallery.Config{
		Environment: gallery.Environment{Level: 4, Character: 1},
		Paintings: []gallery.Painting{
			{ID: 1, Title: "A", Description: "", ImageURL: "x.jpg"},
		},
	}
}

// countingLoader counts runtime acquisitions, optionally blocking until
// released so tests can hold an attempt open across a teardown.
type countingLoader struct {
	mu      sync.Mutex
	loads   int
	release chan struct{}
}

func (l *countingLoader) Load(ctx context.Context) (*renderer.Runtime, error) {
	l.mu.Lock()
	l.loads++
	release := l.release
	l.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return renderer.NewRuntime(), nil
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

func TestViewer_GatesOnSurface(t *testing.T) {
	loader := &countingLoader{}
	v := New(Options{Loader: loader})
	defer v.Close()

	v.SetGalleryData(testGalleryConfig())

	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}
	if loader.count() != 0 {
		t.Error("engine constructed without a surface")
	}
	if v.Engine() != nil {
		t.Error("engine reference stored without a surface")
	}
}

func TestViewer_GatesOnGalleryData(t *testing.T) {
	loader := &countingLoader{}
	v := New(Options{Loader: loader})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 64, 64))

	// Online source: no attempt until the collaborator delivers data.
	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}
	if loader.count() != 0 {
		t.Error("initialize attempted before gallery data arrived")
	}

	v.SetGalleryData(testGalleryConfig())
	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart after data: %v", err)
	}
	if loader.count() != 1 {
		t.Errorf("loads = %d, want 1", loader.count())
	}
	if eng := v.Engine(); eng == nil || !eng.IsInitialized() {
		t.Error("engine not ready after gated attempt unblocked")
	}
}

func TestViewer_OfflineExploreNeedsNoData(t *testing.T) {
	v := New(Options{
		Mode:   gallery.ModeExplore,
		Source: gallery.SourceOffline,
		Loader: &countingLoader{},
	})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 64, 64))
	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}
	if eng := v.Engine(); eng == nil || !eng.IsInitialized() {
		t.Error("offline exploration should start without gallery data")
	}
}

func TestViewer_AttemptIsIdempotent(t *testing.T) {
	loader := &countingLoader{}
	v := New(Options{Loader: loader})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 64, 64))
	v.SetGalleryData(testGalleryConfig())

	for i := 0; i < 3; i++ {
		if err := v.TryStart(context.Background()); err != nil {
			t.Fatalf("TryStart %d errored: %v", i, err)
		}
	}

	if loader.count() != 1 {
		t.Errorf("effectful construction ran %d times, want exactly 1", loader.count())
	}
}

func TestViewer_ReadyCallbackFiresOnce(t *testing.T) {
	var mu sync.Mutex
	readyCalls := 0
	errCalls := 0

	v := New(Options{
		Loader: &countingLoader{},
		Callbacks: Callbacks{
			OnReady: func() { mu.Lock(); readyCalls++; mu.Unlock() },
			OnError: func(error) { mu.Lock(); errCalls++; mu.Unlock() },
		},
	})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 640, 360))
	v.SetGalleryData(testGalleryConfig())

	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}
	v.TryStart(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if readyCalls != 1 {
		t.Errorf("OnReady fired %d times, want 1", readyCalls)
	}
	if errCalls != 0 {
		t.Errorf("OnError fired %d times, want 0", errCalls)
	}
}

func TestViewer_CloseDuringPendingAttempt(t *testing.T) {
	loader := &countingLoader{release: make(chan struct{})}
	v := New(Options{Loader: loader})

	surface := virtualgallery.NewCanvas("t", 64, 64)
	v.SetSurface(surface)
	v.SetGalleryData(testGalleryConfig())

	done := make(chan error, 1)
	go func() {
		done <- v.TryStart(context.Background())
	}()

	// Wait for the attempt to reach the loader, then tear down and only
	// afterwards let the loader continue.
	for loader.count() == 0 {
		time.Sleep(time.Millisecond)
	}
	v.Close()
	close(loader.release)

	if err := <-done; err != nil {
		t.Errorf("abandoned attempt surfaced error: %v", err)
	}

	if v.Engine() != nil {
		t.Error("engine reference survived Close")
	}
	// The renderer never bound the surface.
	if surface.Image().Pix[3] != 0 {
		t.Error("surface was drawn to despite teardown mid-attempt")
	}
}

func TestViewer_CloseIdempotent(t *testing.T) {
	v := New(Options{Loader: &countingLoader{}})

	v.SetSurface(virtualgallery.NewCanvas("t", 64, 64))
	v.SetGalleryData(testGalleryConfig())
	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}

	eng := v.Engine()
	v.Close()
	v.Close()

	if eng.IsInitialized() {
		t.Error("engine still initialized after Close")
	}
	if v.Engine() != nil {
		t.Error("engine reference survived Close")
	}
}

func TestViewer_NoRestartAfterClose(t *testing.T) {
	loader := &countingLoader{}
	v := New(Options{Loader: loader})

	v.SetSurface(virtualgallery.NewCanvas("t", 64, 64))
	v.SetGalleryData(testGalleryConfig())
	v.Close()

	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}
	if loader.count() != 0 {
		t.Error("closed viewer constructed an engine")
	}
}

func TestViewer_UnknownBackendNoFallback(t *testing.T) {
	var gotErr error
	v := New(Options{
		Backend: "unity",
		Callbacks: Callbacks{
			OnError: func(err error) { gotErr = err },
		},
	})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 64, 64))
	v.SetGalleryData(testGalleryConfig())

	err := v.TryStart(context.Background())
	if err == nil {
		t.Fatal("expected unknown_backend error")
	}

	target := &errors.Error{Stage: errors.StageFactory, Kind: errors.KindUnknownBackend}
	if !stderrors.Is(err, target) {
		t.Errorf("err = %v, want unknown_backend", err)
	}
	if !stderrors.Is(gotErr, target) {
		t.Errorf("OnError got %v, want unknown_backend", gotErr)
	}
}

func TestViewer_UnknownBackendWithFallback(t *testing.T) {
	v := New(Options{
		Backend:           "unity",
		FallbackToDefault: true,
		Loader:            &countingLoader{},
	})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 64, 64))
	v.SetGalleryData(testGalleryConfig())

	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}
	if got := v.Engine().Name(); got != string(engine.DefaultBackend) {
		t.Errorf("engine name = %q, want default %q", got, engine.DefaultBackend)
	}
}

func TestViewer_StubBackendSurfacesError(t *testing.T) {
	var gotErr error
	v := New(Options{
		Backend: engine.BackendThree,
		Callbacks: Callbacks{
			OnError: func(err error) { gotErr = err },
		},
	})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 64, 64))
	v.SetGalleryData(testGalleryConfig())

	err := v.TryStart(context.Background())
	if err == nil {
		t.Fatal("expected not_implemented error")
	}

	target := &errors.Error{Stage: errors.StageInit, Kind: errors.KindNotImplemented}
	if !stderrors.Is(err, target) {
		t.Errorf("err = %v, want not_implemented", err)
	}
	if !stderrors.Is(gotErr, target) {
		t.Errorf("OnError got %v, want not_implemented", gotErr)
	}
}

func TestViewer_LevelChangeCallback(t *testing.T) {
	var mu sync.Mutex
	var levels []int

	v := New(Options{
		Loader: &countingLoader{},
		Callbacks: Callbacks{
			OnLevelChange: func(l int) { mu.Lock(); levels = append(levels, l); mu.Unlock() },
		},
	})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 640, 360))
	v.SetGalleryData(testGalleryConfig())
	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}

	if err := v.Engine().ChangeLevel(context.Background(), 2); err != nil {
		t.Fatalf("ChangeLevel errored: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(levels) != 1 || levels[0] != 2 {
		t.Errorf("level callbacks = %v, want [2]", levels)
	}
}

func TestViewer_DataPushAfterReady(t *testing.T) {
	v := New(Options{Loader: &countingLoader{}})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("t", 640, 360))
	v.SetGalleryData(testGalleryConfig())
	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart errored: %v", err)
	}

	// Pushing fresh data to a Ready engine must not start a second
	// attempt; it updates the running scene in place.
	next := testGalleryConfig()
	next.Environment.Level = 2
	v.SetGalleryData(next)
	v.SetUserData(&gallery.UserProfile{DisplayName: "artist"})

	if err := v.TryStart(context.Background()); err != nil {
		t.Fatalf("TryStart after data push errored: %v", err)
	}
}
