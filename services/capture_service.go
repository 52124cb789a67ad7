package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"sync"
	"time"

	"diabkit/utils"
)

var (
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrInvalidPortion    = errors.New("portion must be 0.25, 0.5 or 1.0")
	ErrSessionNotStarted = errors.New("capture session not started")
)

// CameraSource is the device-media collaborator: it hands out a live
// rear-facing video stream, or fails in a way the session maps to
// ErrCameraUnavailable.
type CameraSource interface {
	Acquire(ctx context.Context) (VideoStream, error)
}

// VideoStream is a scoped resource. The session acquires it exactly once
// and stops it exactly once on every exit path.
type VideoStream interface {
	// Frame returns the current video frame at native resolution.
	Frame() (image.Image, error)
	Stop()
}

type captureState int

const (
	captureIdle captureState = iota
	capturePreviewing
	captureAnalyzing
	captureDone // result delivered or session closed
)

// MealCandidate is a pending, unsaved meal surfaced after a successful
// analysis. Nutrient values are already portion-scaled and rounded to
// whole units (kcal, grams).
type MealCandidate struct {
	Name       string
	Image      []byte // encoded JPEG
	CapturedAt time.Time
	Calories   float64
	Carbs      float64
	Protein    float64
	Fat        float64
	Sugar      float64
	Portion    float64
	Warnings   []string
}

// CaptureEvent replaces callback wiring: exactly one event is emitted
// per accepted capture trigger, either a candidate or a failure.
type CaptureEvent struct {
	Candidate *MealCandidate
	Err       error
}

// CaptureSession orchestrates one capture-to-record cycle:
// Idle -> Previewing -> (capture) -> Analyzing -> {Result, back to Previewing}.
// At most one analysis is in flight; extra triggers are ignored until it
// resolves. Cancel at any point releases the camera and discards any
// late-arriving analysis result.
type CaptureSession struct {
	camera   CameraSource
	analyzer NutritionAnalyzer

	analysisTimeout time.Duration

	mu         sync.Mutex
	state      captureState
	stream     VideoStream
	released   bool
	portion    float64
	generation int // bumped on cancel; stale results check against it

	events chan CaptureEvent
}

// NutritionAnalyzer is satisfied by GeminiService and by test stubs.
type NutritionAnalyzer interface {
	Estimate(ctx context.Context, imageBytes []byte) (*NutritionEstimate, error)
}

func NewCaptureSession(camera CameraSource, analyzer NutritionAnalyzer) *CaptureSession {
	return &CaptureSession{
		camera:          camera,
		analyzer:        analyzer,
		analysisTimeout: 30 * time.Second,
		portion:         1.0,
		events:          make(chan CaptureEvent, 1),
	}
}

// Events delivers one CaptureEvent per accepted trigger.
func (s *CaptureSession) Events() <-chan CaptureEvent {
	return s.events
}

// Start acquires the live stream (Idle -> Previewing). On camera denial
// the session terminates with ErrCameraUnavailable and retains nothing.
func (s *CaptureSession) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != captureIdle {
		return nil
	}

	stream, err := s.camera.Acquire(ctx)
	if err != nil {
		s.state = captureDone
		return fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	s.stream = stream
	s.state = capturePreviewing
	return nil
}

// SetPortion picks the multiplier applied to the next analysis result.
// It is fixed once an analysis is in flight.
func (s *CaptureSession) SetPortion(p float64) error {
	if !ValidPortion(p) {
		return ErrInvalidPortion
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == captureAnalyzing {
		return errors.New("portion locked while analyzing")
	}
	s.portion = p
	return nil
}

func ValidPortion(p float64) bool {
	return p == 0.25 || p == 0.5 || p == 1.0
}

// TriggerCapture snapshots the current frame, encodes it and submits it
// for analysis. While a previous analysis is pending the call is a
// no-op, so a double-tap cannot start concurrent requests. The encode
// happens on the caller's goroutine; the stream keeps rendering.
func (s *CaptureSession) TriggerCapture(ctx context.Context) error {
	s.mu.Lock()
	if s.state != capturePreviewing {
		analyzing := s.state == captureAnalyzing
		s.mu.Unlock()
		if analyzing {
			return nil // suppressed repeat trigger
		}
		return ErrSessionNotStarted
	}
	stream := s.stream
	portion := s.portion
	s.mu.Unlock()

	frame, err := stream.Frame()
	if err != nil {
		s.fail(fmt.Errorf("snapshot frame: %w", err))
		return nil
	}
	jpegBytes, err := encodeJPEG(frame)
	if err != nil {
		s.fail(fmt.Errorf("encode frame: %w", err))
		return nil
	}

	s.mu.Lock()
	if s.state != capturePreviewing {
		// cancelled while encoding
		s.mu.Unlock()
		return nil
	}
	s.state = captureAnalyzing
	gen := s.generation
	s.mu.Unlock()

	go s.analyze(ctx, gen, jpegBytes, portion)
	return nil
}

func (s *CaptureSession) analyze(ctx context.Context, gen int, jpegBytes []byte, portion float64) {
	ctx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
	defer cancel()

	capturedAt := time.Now()
	est, err := s.analyzer.Estimate(ctx, jpegBytes)

	s.mu.Lock()
	if s.generation != gen || s.state != captureAnalyzing {
		// the user left the workflow; drop the stale result
		s.mu.Unlock()
		return
	}
	if err != nil {
		// recoverable: back to the live preview, frame discarded
		s.state = capturePreviewing
		s.mu.Unlock()
		s.events <- CaptureEvent{Err: err}
		return
	}
	s.state = captureDone
	s.releaseLocked()
	s.mu.Unlock()

	c := buildCandidate(est, jpegBytes, portion, capturedAt)
	s.events <- CaptureEvent{Candidate: c}
}

func buildCandidate(est *NutritionEstimate, jpegBytes []byte, portion float64, capturedAt time.Time) *MealCandidate {
	c := &MealCandidate{
		Name:       est.FoodName,
		Image:      jpegBytes,
		CapturedAt: capturedAt,
		Calories:   scale(est.Calories, portion),
		Carbs:      scale(est.Carbohydrates, portion),
		Protein:    scale(est.Protein, portion),
		Fat:        scale(est.Fat, portion),
		Sugar:      scale(est.Sugar, portion),
		Portion:    portion,
	}
	// warnings reflect what the user will actually eat, so scaled values
	c.Warnings = utils.AssessMealForDiabetic(c.Name, c.Calories, c.Carbs, c.Sugar)
	return c
}

// scale applies the portion multiplier and rounds to the nearest whole
// unit, half away from zero.
func scale(v, portion float64) float64 {
	return math.Round(v * portion)
}

func (s *CaptureSession) fail(err error) {
	s.mu.Lock()
	stillPreviewing := s.state == capturePreviewing
	s.mu.Unlock()
	if stillPreviewing {
		s.events <- CaptureEvent{Err: err}
	}
}

// Cancel leaves the capture workflow: the camera is released and any
// in-flight analysis result will be discarded when it arrives. Safe to
// call multiple times and on sessions that never acquired a camera.
func (s *CaptureSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = captureDone
	s.releaseLocked()
}

// releaseLocked stops the stream exactly once. Callers hold s.mu.
func (s *CaptureSession) releaseLocked() {
	if s.stream != nil && !s.released {
		s.released = true
		s.stream.Stop()
	}
}

func encodeJPEG(frame image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
