package engine

import (
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-camera/engine/profiler"
	"github.com/Carmen-Shannon/oxy-camera/engine/rig"
	"github.com/Carmen-Shannon/oxy-camera/engine/scene"
	"github.com/Carmen-Shannon/oxy-camera/engine/window"
)

// viewportSetter is implemented by presenters that follow the window size, such as camera.Camera.
type viewportSetter interface {
	SetViewport(width, height int)
}

// engine implements the Engine interface.
// Coordinates the tick and render goroutines and the window.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	stopped atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	resizeCallback func(width, height int)

	mu    *sync.RWMutex
	scene scene.Scene
	rigs  map[int]rig.Rig

	// rigPool ticks rigs in parallel. Workers are reused across frames; a WaitGroup provides the
	// per-frame barrier since pool.Wait() blocks until workers idle-exit.
	rigPool    worker.DynamicWorkerPool
	rigWorkers int

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the camera engine.
// It orchestrates the tick loop, the render loop and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// Rigs are ticked at this rate, after the tick callback.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick before the scene and rigs update.
	// Use this for game logic that moves the actors the cameras follow.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame.
	// Use this to upload camera uniforms and draw.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function called after the window is resized and every rig
	// camera has been given the new viewport. Use this to reconfigure the surface and input viewport.
	//
	// Parameters:
	//   - callback: function receiving the new size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// SetScene sets the world the rigs read from. Inactive scenes are not updated.
	//
	// Parameters:
	//   - s: the Scene, or nil
	SetScene(s scene.Scene)

	// Scene returns the current scene, or nil.
	Scene() scene.Scene

	// AddRig registers a rig at the given z-index key, replacing and closing any rig already there.
	// Rigs without a world are bound to the engine's scene.
	//
	// Parameters:
	//   - key: the z-index of the rig
	//   - r: the Rig to register
	AddRig(key int, r rig.Rig)

	// RemoveRig closes and removes the rig at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the rig to remove
	RemoveRig(key int)

	// Rig retrieves the rig registered at the given z-index key.
	//
	// Returns:
	//   - rig.Rig: the rig at the key, or nil if not found
	Rig(key int) rig.Rig

	// Rigs returns a copy of all registered rigs keyed by z-index.
	//
	// Returns:
	//   - map[int]rig.Rig: a copy of the rigs map
	Rigs() map[int]rig.Rig

	// Step advances the scene and every rig by deltaTime. Each rig is updated by exactly one
	// worker; Step returns once every rig has finished its frame.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - profiler.Stats: the frame's workload
	Step(deltaTime float32) profiler.Stats

	// Run starts the engine loops and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, workers, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		mu:              &sync.RWMutex{},
		rigs:            make(map[int]rig.Rig),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		rigWorkers:      max(runtime.NumCPU()-1, 1),
	}

	for _, opt := range options {
		opt(e)
	}

	// Queue size of 256 accommodates typical rig counts with headroom.
	e.rigPool = worker.NewDynamicWorkerPool(e.rigWorkers, 256, time.Second)

	if e.scene != nil {
		for _, r := range e.rigs {
			if r.World() == nil {
				r.SetWorld(e.scene)
			}
		}
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	e.handle()
	if e.window == nil {
		e.wg.Wait()
		e.rigPool.Stop()
		return
	}
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
	e.rigPool.Stop()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickDuration(fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}
	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) SetScene(s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene = s
	for _, r := range e.rigs {
		r.SetWorld(s)
	}
}

func (e *engine) Scene() scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scene
}

func (e *engine) AddRig(key int, r rig.Rig) {
	if r == nil {
		return
	}
	e.mu.Lock()
	old := e.rigs[key]
	e.rigs[key] = r
	if e.scene != nil && r.World() == nil {
		r.SetWorld(e.scene)
	}
	e.mu.Unlock()

	if old != nil && old != r {
		old.Close()
	}
	if e.window != nil {
		if v, ok := r.Presenter().(viewportSetter); ok {
			v.SetViewport(e.window.Width(), e.window.Height())
		}
	}
	slog.Debug("rig added", "key", key, "owner", r.Owner())
}

func (e *engine) RemoveRig(key int) {
	e.mu.Lock()
	r, ok := e.rigs[key]
	delete(e.rigs, key)
	e.mu.Unlock()

	if ok {
		r.Close()
		slog.Debug("rig removed", "key", key, "owner", r.Owner())
	}
}

func (e *engine) Rig(key int) rig.Rig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rigs[key]
}

func (e *engine) Rigs() map[int]rig.Rig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]rig.Rig, len(e.rigs))
	for k, v := range e.rigs {
		cp[k] = v
	}
	return cp
}

func (e *engine) Step(deltaTime float32) profiler.Stats {
	start := time.Now()

	e.mu.RLock()
	s := e.scene
	keys := make([]int, 0, len(e.rigs))
	for k := range e.rigs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	rigs := make([]rig.Rig, 0, len(keys))
	for _, k := range keys {
		rigs = append(rigs, e.rigs[k])
	}
	e.mu.RUnlock()

	if s != nil && s.Active() {
		s.Update(deltaTime)
	}

	if len(rigs) < 2 || e.stopped.Load() {
		for _, r := range rigs {
			e.updateRig(r, deltaTime)
		}
	} else {
		var wg sync.WaitGroup
		for i, r := range rigs {
			wg.Add(1)
			rCap := r // capture for closure
			e.rigPool.SubmitTask(worker.Task{
				ID: i,
				Do: func() (any, error) {
					defer wg.Done()
					e.updateRig(rCap, deltaTime)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}

	stats := profiler.Stats{Rigs: len(rigs), TickTime: time.Since(start)}
	for _, r := range rigs {
		stats.Effects += len(r.ActiveEffects())
		stats.Shakes += r.Shakes().ActiveCount()
	}
	if e.profilingEnabled.Load() {
		e.profiler.Tick(stats)
	}
	return stats
}

// --- internal helpers ---

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once. The rig pool is stopped here only when
// the loops never ran; otherwise Run stops it once the tick goroutine has left its last Step.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		wasRunning := e.running.Swap(false)
		e.stopped.Store(true)
		close(e.quitChannel)
		if !wasRunning {
			e.rigPool.Stop()
		}
		if e.window != nil && e.window.IsRunning() {
			if err := e.window.Close(); err != nil {
				slog.Warn("failed to close window", "error", err)
			}
		}
	})
}

// handle launches the tick, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleRender()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Fires the tick callback then steps the scene and rigs, and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
			e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			limit := e.renderFrameLimit
			if limit <= 0 {
				// yield so an uncapped loop without a swap chain does not spin a core
				limit = time.Millisecond
			}
			if remaining := limit - time.Since(lastRender); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// updateRig runs one rig frame, logging instead of propagating a panic so the other rigs keep ticking.
func (e *engine) updateRig(r rig.Rig, deltaTime float32) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("rig update recovered from panic", "owner", r.Owner(), "panic", p)
		}
	}()
	r.Update(deltaTime)
}

// resize forwards a window resize to every rig presenter that tracks the viewport, then to the resize callback.
func (e *engine) resize(width, height int) {
	for _, r := range e.Rigs() {
		if v, ok := r.Presenter().(viewportSetter); ok {
			v.SetViewport(width, height)
		}
	}
	if e.resizeCallback != nil {
		e.resizeCallback(width, height)
	}
}

func tickDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
