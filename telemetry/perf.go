// Package telemetry collects per-frame timings and camera trace data.
package telemetry

import (
	"log/slog"
	"time"
)

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Stages        map[string]time.Duration
}

// PerfCollector tracks per-stage performance metrics over a rolling
// window. The pipeline observer feeds it one duration per stage per
// frame.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentStages map[string]time.Duration
	frameStart    time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second
// at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentStages: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentStages = make(map[string]time.Duration)
}

// RecordStage records the duration of one pipeline stage for the
// current frame. Suitable as a pipeline Observer.
func (p *PerfCollector) RecordStage(id string, took time.Duration) {
	p.currentStages[id] += took
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	sample := PerfSample{
		FrameDuration: time.Since(p.frameStart),
		Stages:        p.currentStages,
	}

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Stage breakdown (average durations)
	StageAvg map[string]time.Duration

	// Stage percentages of total frame time
	StagePct map[string]float64

	FramesPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			StageAvg: make(map[string]time.Duration),
			StagePct: make(map[string]float64),
		}
	}

	var total time.Duration
	var min, max time.Duration
	stageSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < min {
			min = s.FrameDuration
		}
		if s.FrameDuration > max {
			max = s.FrameDuration
		}

		for stage, dur := range s.Stages {
			stageSum[stage] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	stageAvg := make(map[string]time.Duration)
	stagePct := make(map[string]float64)
	for stage, sum := range stageSum {
		stageAvg[stage] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			stagePct[stage] = float64(stageAvg[stage]) / float64(avg) * 100
		}
	}

	var fps float64
	if avg > 0 {
		fps = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: min,
		MaxFrameDuration: max,
		StageAvg:         stageAvg,
		StagePct:         stagePct,
		FramesPerSecond:  fps,
	}
}

// LogStats logs performance statistics via slog.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"fps", int(s.FramesPerSecond),
	}
	for stage, pct := range s.StagePct {
		attrs = append(attrs, "pct_"+stage, pct)
	}
	slog.Info("perf", attrs...)
}
