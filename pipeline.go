package palettize

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bodgit/palettize/downsample"
	"github.com/bodgit/palettize/palette"
	"github.com/bodgit/palettize/table"
	"github.com/disintegration/imaging"
	"github.com/schollz/progressbar/v3"
)

var errNotDirectory = errors.New("not a directory")

type job struct {
	index int
	file  string
}

func listImages(dir string) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	info, err := d.Stat()
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, errNotDirectory)
	}

	entries, err := d.Readdir(0)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, info := range entries {
		// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
		if info.Name()[0] == '.' {
			continue
		}

		// Ignore anything that isn't a normal file
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, info.Name())
	}

	// Directory order varies between filesystems
	sort.Strings(files)

	return files, nil
}

func (p *Palettize) sendImages(ctx context.Context, dir string, files []string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i, file := range files {
			select {
			case out <- job{i, filepath.Join(dir, file)}:
			case <-ctx.Done():
				errc <- errors.New("listing cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (p *Palettize) quantizeFile(file string) (*image.NRGBA, error) {
	src, err := imaging.Open(file)
	if err != nil {
		return nil, err
	}

	m, err := downsample.Reduce(src, p.levels, p.filter)
	if err != nil {
		return nil, err
	}

	mapper := p.mapper
	if p.adaptive > 0 {
		if mapper, err = palette.Adaptive(m, p.adaptive); err != nil {
			return nil, err
		}
	}

	palette.Map(m, mapper)

	return m, nil
}

// Each result is stored at its job index so the listing order survives
// however the work is spread across workers
func (p *Palettize) imageWorker(ctx context.Context, in <-chan job, images []*image.NRGBA, bar *progressbar.ProgressBar) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			m, err := p.quantizeFile(j.file)
			if err != nil {
				errc <- fmt.Errorf("%s: %w", j.file, err)
				return
			}
			images[j.index] = m
			_ = bar.Add(1)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Quantize downsamples every image in the directory path, maps each pixel to
// its nearest palette color and returns one row per pixel. Images are taken
// in file name order.
func (p *Palettize) Quantize(path string) (*table.Table, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	files, err := listImages(dir)
	if err != nil {
		return nil, err
	}

	p.logger.Printf("Found %d images in \"%s\"\n", len(files), dir)

	if len(files) == 0 {
		return table.New(), nil
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	images := make([]*image.NRGBA, len(files))
	bar := p.progress(len(files), "Quantizing")

	var errcList []<-chan error

	jobs, errc, err := p.sendImages(ctx, dir, files)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	for i := 0; i < p.workers; i++ {
		errc, err := p.imageWorker(ctx, jobs, images, bar)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}
	_ = bar.Finish()

	t := table.New()
	for i, file := range files {
		t.Append(file, images[i])
	}

	return t, nil
}
