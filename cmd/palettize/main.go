package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/palettize"
	"github.com/bodgit/palettize/downsample"
	"github.com/urfave/cli/v2"
)

const (
	defaultFrameDir = "Image/frames"
	defaultCSV      = "palette.csv"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func extract(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	p, err := palettize.New(newLogger(c),
		palettize.WithPrefix(c.String("prefix")),
		palettize.WithFormat(c.String("format")),
	)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if _, err := p.Extract(c.Args().First(), c.String("output"), c.Int("interval")); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func quantize(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	filter, err := downsample.ParseFilter(c.String("filter"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	options := []palettize.Option{
		palettize.WithLevels(c.Int("levels")),
		palettize.WithFilter(filter),
		palettize.WithAdaptive(c.Int("adaptive")),
	}
	if c.IsSet("workers") {
		options = append(options, palettize.WithWorkers(c.Int("workers")))
	}

	p, err := palettize.New(newLogger(c), options...)
	if err != nil {
		return cli.Exit(err, 1)
	}

	t, err := p.Quantize(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := t.WriteFile(c.String("output")); err != nil {
		return cli.Exit(err, 1)
	}

	if c.String("db") == "" {
		return nil
	}

	s, err := palettize.NewStore(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer s.Close()

	if err := s.Import(t); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "palettize"
	app.Usage = "Video frame sampling and palette quantization utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"PALETTIZE_VERBOSE"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "extract",
			Usage:       "Save a frame from a video at a fixed interval",
			Description: "",
			ArgsUsage:   "VIDEO",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					EnvVars: []string{"PALETTIZE_FRAME_DIR"},
					Value:   defaultFrameDir,
					Usage:   "directory to write frames to",
				},
				&cli.IntFlag{
					Name:    "interval",
					Aliases: []string{"i"},
					EnvVars: []string{"PALETTIZE_INTERVAL"},
					Value:   10,
					Usage:   "seconds between saved frames",
				},
				&cli.StringFlag{
					Name:    "prefix",
					EnvVars: []string{"PALETTIZE_PREFIX"},
					Usage:   "prepend to each frame filename",
				},
				&cli.StringFlag{
					Name:    "format",
					EnvVars: []string{"PALETTIZE_FORMAT"},
					Value:   "jpg",
					Usage:   "frame image format, jpg or png",
				},
			},
			Action: extract,
		},
		{
			Name:        "quantize",
			Usage:       "Quantize a directory of images and record their pixel colors",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					EnvVars: []string{"PALETTIZE_CSV"},
					Value:   defaultCSV,
					Usage:   "path to CSV file",
				},
				&cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"w"},
					EnvVars: []string{"PALETTIZE_WORKERS"},
					Usage:   "number of images to quantize concurrently (default: number of CPUs)",
				},
				&cli.IntFlag{
					Name:    "levels",
					EnvVars: []string{"PALETTIZE_LEVELS"},
					Value:   3,
					Usage:   "number of times to halve each image",
				},
				&cli.StringFlag{
					Name:    "filter",
					EnvVars: []string{"PALETTIZE_FILTER"},
					Value:   downsample.Pyramid.String(),
					Usage:   "downsampling filter, one of pyramid, nearest, bilinear, bicubic or lanczos3",
				},
				&cli.IntFlag{
					Name:    "adaptive",
					EnvVars: []string{"PALETTIZE_ADAPTIVE"},
					Usage:   "quantize each image to its own palette of this many colors instead of the fixed grid",
				},
				&cli.StringFlag{
					Name:    "db",
					EnvVars: []string{"PALETTIZE_DB"},
					Usage:   "also record histograms in this SQLite database",
				},
			},
			Action: quantize,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
