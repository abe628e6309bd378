package palettize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bodgit/palettize/frames"
	"github.com/disintegration/imaging"
)

func (p *Palettize) makeDirectory(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%s: %w", dir, errNotDirectory)
		}
		p.logger.Printf("Directory \"%s\" already exists\n", dir)
		return nil
	case os.IsNotExist(err):
		return os.MkdirAll(dir, 0755)
	default:
		return err
	}
}

// Extract decodes the video file and writes one frame every interval
// seconds into dir, named after the frame index. It returns the number of
// frames written.
func (p *Palettize) Extract(file, dir string, interval int) (int, error) {
	if err := p.makeDirectory(dir); err != nil {
		return 0, err
	}

	src, err := p.open(file)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	p.logger.Printf("fps: %v\n", src.FPS())

	s, err := frames.NewSampler(src, interval)
	if err != nil {
		return 0, err
	}

	var n int
	for s.Next() {
		f := s.Frame()
		name := filepath.Join(dir, fmt.Sprintf("%s%d.%s", p.prefix, f.Index, p.format))
		p.logger.Printf("Creating %s\n", name)
		if err := imaging.Save(f.Image, name); err != nil {
			return n, err
		}
		n++
	}

	p.logger.Printf("Wrote %d of %d frames\n", n, s.Decoded())

	return n, nil
}
