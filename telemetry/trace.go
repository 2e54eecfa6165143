package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// FrameSample captures the camera state for a single simulation frame.
type FrameSample struct {
	Tick        int64   `csv:"tick"`
	DT          float32 `csv:"dt"`
	Trauma      float32 `csv:"trauma"`
	OffsetX     float32 `csv:"offset_x"`
	OffsetY     float32 `csv:"offset_y"`
	RotationDeg float32 `csv:"rotation_deg"`
	CamX        float32 `csv:"cam_x"`
	CamY        float32 `csv:"cam_y"`
	Zoom        float32 `csv:"zoom"`
}

// WindowStats aggregates shake behaviour over a window of recent frames.
// Useful for tuning noise and translation strengths against a target feel.
type WindowStats struct {
	WindowEndTick int64 `csv:"window_end"`
	Frames        int   `csv:"frames"`

	TraumaMean float64 `csv:"trauma_mean"`

	OffsetXMean float64 `csv:"offset_x_mean"`
	OffsetXStd  float64 `csv:"offset_x_std"`
	OffsetYMean float64 `csv:"offset_y_mean"`
	OffsetYStd  float64 `csv:"offset_y_std"`

	RotationMean float64 `csv:"rotation_mean"`
	RotationStd  float64 `csv:"rotation_std"`
}

// TraceRecorder writes per-frame camera samples to trace.csv and keeps a
// rolling window for aggregate statistics.
type TraceRecorder struct {
	dir       string
	traceFile *os.File
	statsFile *os.File

	traceHeaderWritten bool
	statsHeaderWritten bool

	window     []FrameSample
	windowSize int
}

// NewTraceRecorder creates a recorder writing into dir.
// Returns nil if dir is empty (tracing disabled).
func NewTraceRecorder(dir string, windowSize int) (*TraceRecorder, error) {
	if dir == "" {
		return nil, nil
	}
	if windowSize <= 0 {
		windowSize = 60
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}

	tr := &TraceRecorder{dir: dir, windowSize: windowSize}

	f, err := os.Create(filepath.Join(dir, "trace.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating trace.csv: %w", err)
	}
	tr.traceFile = f

	f, err = os.Create(filepath.Join(dir, "windows.csv"))
	if err != nil {
		tr.traceFile.Close()
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	tr.statsFile = f

	return tr, nil
}

// Record appends one frame sample to trace.csv and the rolling window.
func (tr *TraceRecorder) Record(s FrameSample) error {
	if tr == nil {
		return nil
	}

	tr.window = append(tr.window, s)
	if len(tr.window) > tr.windowSize {
		tr.window = tr.window[len(tr.window)-tr.windowSize:]
	}

	records := []FrameSample{s}
	if !tr.traceHeaderWritten {
		if err := gocsv.Marshal(records, tr.traceFile); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		tr.traceHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, tr.traceFile); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	return nil
}

// WindowStats computes aggregate statistics over the current rolling window.
func (tr *TraceRecorder) WindowStats() WindowStats {
	if tr == nil || len(tr.window) == 0 {
		return WindowStats{}
	}

	n := len(tr.window)
	trauma := make([]float64, n)
	offX := make([]float64, n)
	offY := make([]float64, n)
	rot := make([]float64, n)
	for i, s := range tr.window {
		trauma[i] = float64(s.Trauma)
		offX[i] = float64(s.OffsetX)
		offY[i] = float64(s.OffsetY)
		rot[i] = float64(s.RotationDeg)
	}

	return WindowStats{
		WindowEndTick: tr.window[n-1].Tick,
		Frames:        n,
		TraumaMean:    stat.Mean(trauma, nil),
		OffsetXMean:   stat.Mean(offX, nil),
		OffsetXStd:    stat.StdDev(offX, nil),
		OffsetYMean:   stat.Mean(offY, nil),
		OffsetYStd:    stat.StdDev(offY, nil),
		RotationMean:  stat.Mean(rot, nil),
		RotationStd:   stat.StdDev(rot, nil),
	}
}

// FlushWindow writes the current window statistics to windows.csv.
func (tr *TraceRecorder) FlushWindow() error {
	if tr == nil || len(tr.window) == 0 {
		return nil
	}

	records := []WindowStats{tr.WindowStats()}
	if !tr.statsHeaderWritten {
		if err := gocsv.Marshal(records, tr.statsFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
		tr.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, tr.statsFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
	}
	return nil
}

// Close flushes the final window and closes the output files.
func (tr *TraceRecorder) Close() error {
	if tr == nil {
		return nil
	}
	if err := tr.FlushWindow(); err != nil {
		return err
	}
	var firstErr error
	if err := tr.traceFile.Close(); err != nil {
		firstErr = err
	}
	if err := tr.statsFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
