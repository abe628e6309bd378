/*
Package palettize is a library for sampling still frames from video and for
recording the colors of a batch of images after quantizing them to a fixed
palette.
*/
package palettize

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/bodgit/palettize/downsample"
	"github.com/bodgit/palettize/frames"
	"github.com/bodgit/palettize/palette"
)

const (
	defaultLevels = 3
	defaultFormat = "jpg"
)

// Palettize holds the shared palette index and settings for both pipelines.
type Palettize struct {
	logger *log.Logger
	mapper palette.Mapper

	workers  int
	levels   int
	filter   downsample.Filter
	adaptive int

	prefix string
	format string
	open   func(string) (frames.Source, error)
}

// Option configures a Palettize.
type Option func(*Palettize) error

// WithWorkers sets the number of images quantized concurrently.
func WithWorkers(n int) Option {
	return func(p *Palettize) error {
		if n < 1 {
			return errors.New("workers must be at least one")
		}
		p.workers = n
		return nil
	}
}

// WithLevels sets how many times each image is halved before quantizing.
func WithLevels(n int) Option {
	return func(p *Palettize) error {
		if n < 0 {
			return errors.New("levels cannot be negative")
		}
		p.levels = n
		return nil
	}
}

// WithFilter sets the downsampling filter.
func WithFilter(f downsample.Filter) Option {
	return func(p *Palettize) error {
		p.filter = f
		return nil
	}
}

// WithAdaptive quantizes each image to its own palette of at most n colors
// instead of the fixed grid. Zero restores the grid.
func WithAdaptive(n int) Option {
	return func(p *Palettize) error {
		if n < 0 {
			return errors.New("adaptive palette size cannot be negative")
		}
		p.adaptive = n
		return nil
	}
}

// WithPrefix sets the string prepended to the name of each extracted frame.
func WithPrefix(prefix string) Option {
	return func(p *Palettize) error {
		p.prefix = prefix
		return nil
	}
}

// WithFormat sets the image format for extracted frames, either "jpg" or
// "png".
func WithFormat(format string) Option {
	return func(p *Palettize) error {
		switch f := strings.ToLower(strings.TrimPrefix(format, ".")); f {
		case "jpg", "jpeg", "png":
			p.format = f
		default:
			return fmt.Errorf("unsupported frame format %q", format)
		}
		return nil
	}
}

// New returns a Palettize logging to logger.
func New(logger *log.Logger, options ...Option) (*Palettize, error) {
	p := &Palettize{
		logger:  logger,
		mapper:  palette.NewTree(palette.Grid()),
		workers: runtime.NumCPU(),
		levels:  defaultLevels,
		filter:  downsample.Pyramid,
		format:  defaultFormat,
		open:    frames.Open,
	}

	for _, o := range options {
		if err := o(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}
