/*
Package frames samples frames from a video at a fixed time interval.

Frames are numbered from zero in decode order. With a declared frame rate of
F frames per second, truncated to an integer, and an interval of N seconds,
frame i is kept whenever i is a multiple of F*N.
*/
package frames

import (
	"errors"
	"fmt"
	"image"

	vidio "github.com/AlexEidt/Vidio"
)

var (
	errInterval  = errors.New("frames: interval must be positive")
	errFrameRate = errors.New("frames: frame rate below one frame per second")
)

// Source is a sequential frame decoder. Read decodes the next frame into the
// buffer registered with SetFrameBuffer as packed RGBA and returns false at
// the end of the stream. *vidio.Video satisfies this interface.
type Source interface {
	FPS() float64
	Frames() int
	Width() int
	Height() int
	SetFrameBuffer([]byte) error
	Read() bool
	Close()
}

// Open returns a Source that decodes file using ffmpeg.
func Open(file string) (Source, error) {
	v, err := vidio.NewVideo(file)
	if err != nil {
		return nil, fmt.Errorf("frames: %w", err)
	}
	return v, nil
}

// Step returns the distance in frames between two kept frames.
func Step(fps float64, interval int) (int, error) {
	if interval < 1 {
		return 0, errInterval
	}
	if int(fps) < 1 {
		return 0, fmt.Errorf("%w: %v", errFrameRate, fps)
	}
	return int(fps) * interval, nil
}

// Keep reports whether the frame with the given index is sampled.
func Keep(index, step int) bool {
	return index%step == 0
}

// Frame is a decoded frame and its position in the stream.
type Frame struct {
	Index int
	Image *image.RGBA
}

// Sampler reads every frame from a Source and stops on those that are kept.
type Sampler struct {
	src   Source
	step  int
	next  int
	frame Frame
}

// NewSampler returns a Sampler keeping one frame every interval seconds of
// src.
func NewSampler(src Source, interval int) (*Sampler, error) {
	step, err := Step(src.FPS(), interval)
	if err != nil {
		return nil, err
	}

	w, h := src.Width(), src.Height()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("frames: invalid frame size %dx%d", w, h)
	}

	m := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := src.SetFrameBuffer(m.Pix); err != nil {
		return nil, fmt.Errorf("frames: %w", err)
	}

	return &Sampler{
		src:  src,
		step: step,
		frame: Frame{
			Index: -1,
			Image: m,
		},
	}, nil
}

// Step returns the distance in frames between two kept frames.
func (s *Sampler) Step() int {
	return s.step
}

// Next advances to the next kept frame. It returns false once the stream is
// exhausted.
func (s *Sampler) Next() bool {
	for s.src.Read() {
		i := s.next
		s.next++
		if Keep(i, s.step) {
			s.frame.Index = i
			return true
		}
	}
	return false
}

// Frame returns the current frame. The image is reused by the next call to
// Next.
func (s *Sampler) Frame() Frame {
	return s.frame
}

// Decoded returns the number of frames read from the stream so far.
func (s *Sampler) Decoded() int {
	return s.next
}
