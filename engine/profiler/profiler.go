package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is the per-frame camera workload passed to Tick.
type Stats struct {
	// Rigs is the number of rigs ticked this frame.
	Rigs int
	// Effects is the number of active effects across all rigs.
	Effects int
	// Shakes is the number of running shakes across all rigs.
	Shakes int
	// TickTime is the wall time spent ticking rigs this frame.
	TickTime time.Duration
}

// Report is one logged profiling interval.
type Report struct {
	FPS float64
	// AvgTickTime is the mean rig tick time over the interval.
	AvgTickTime time.Duration
	// MaxTickTime is the slowest rig tick in the interval.
	MaxTickTime time.Duration
	// Peak counts are the largest values seen in the interval.
	PeakRigs    int
	PeakEffects int
	PeakShakes  int
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	MaxPauseUs  uint64
}

// Profiler tracks frame rate, camera workload and memory statistics.
// Outputs a Report to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	tickTotal time.Duration
	window    Report
	last      Report
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetInterval changes how often reports are logged. Zero or less logs every tick.
func (p *Profiler) SetInterval(d time.Duration) {
	p.updateInterval = max(d, 0)
}

// Tick should be called once per frame with that frame's camera workload.
// Logs a Report when the update interval has elapsed.
//
// Parameters:
//   - stats: the frame's workload
//
// Returns:
//   - bool: true if a report was logged this tick, false otherwise
func (p *Profiler) Tick(stats Stats) bool {
	p.frameCount++
	p.tickTotal += stats.TickTime
	p.window.MaxTickTime = max(p.window.MaxTickTime, stats.TickTime)
	p.window.PeakRigs = max(p.window.PeakRigs, stats.Rigs)
	p.window.PeakEffects = max(p.window.PeakEffects, stats.Effects)
	p.window.PeakShakes = max(p.window.PeakShakes, stats.Shakes)

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	r := p.window
	if seconds := elapsed.Seconds(); seconds > 0 {
		r.FPS = float64(p.frameCount) / seconds
	}
	r.AvgTickTime = p.tickTotal / time.Duration(p.frameCount)
	p.readMemory(&r, elapsed)

	slog.Info("profiler",
		"fps", r.FPS,
		"rigs", r.PeakRigs,
		"effects", r.PeakEffects,
		"shakes", r.PeakShakes,
		"tick_avg", r.AvgTickTime,
		"tick_max", r.MaxTickTime,
		"heap_mb", r.HeapMB,
		"alloc_rate_mb", r.AllocRateMB,
		"gc", r.GCCount,
		"gc_max_pause_us", r.MaxPauseUs,
	)

	p.last = r
	p.window = Report{}
	p.frameCount = 0
	p.tickTotal = 0
	p.lastTime = currentTime
	return true
}

// Last returns the most recently logged report.
func (p *Profiler) Last() Report {
	return p.last
}

// readMemory fills the memory fields of r from the runtime.
func (p *Profiler) readMemory(r *Report, elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	if seconds := elapsed.Seconds(); seconds > 0 {
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		r.AllocRateMB = float64(allocDelta) / 1024 / 1024 / seconds
	}

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	start := p.lastGCCount
	if gcCount-start > 256 {
		start = gcCount - 256
	}
	for i := start; i < gcCount; i++ {
		r.MaxPauseUs = max(r.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}
	r.GCCount = gcCount

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
