// Command pixelsort sorts the pixels of images along rows or columns,
// within runs selected by a brightness or color threshold.
//
// Usage:
//
//	pixelsort [flags] image...
//
// Each input is written next to -o as <name>_sorted.<ext>.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pixelsort"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "pixelsort: %v\n", err)
		}
		os.Exit(1)
	}
}

// settings holds everything parsed from the command line.
type settings struct {
	cfg     pixelsort.Config
	workers int
	jobs    int
	legacy  bool
	scale   float64
	outDir  string
	suffix  string
	verbose bool
	inputs  []string
}

var (
	// errNoInputs is returned when no image paths are given.
	errNoInputs = errors.New("no input images")

	// errDuplicateOutput is returned when two inputs map to one output file.
	errDuplicateOutput = errors.New("inputs share an output file")
)

func parseFlags(args []string, stderr io.Writer) (*settings, error) {
	s := &settings{}
	fs := flag.NewFlagSet("pixelsort", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pixelsort [flags] image...\n")
		fs.PrintDefaults()
	}

	fs.TextVar(&s.cfg.SortKey, "key", pixelsort.Luminance,
		"sort key: luminance|rgbmax|hue|saturation|red|green|blue|white|black")
	fs.TextVar(&s.cfg.ThresholdKey, "threshold-key", pixelsort.KeyDefault,
		"threshold key (default: same as -key)")
	fs.Float64Var(&s.cfg.Threshold, "threshold", 0.5, "segment threshold in [0,1]")
	fs.BoolVar(&s.cfg.UnderThreshold, "under", false, "segment pixels below the threshold instead of above")
	fs.BoolVar(&s.cfg.Reverse, "reverse", false, "sort segments in descending order")
	fs.TextVar(&s.cfg.Direction, "direction", pixelsort.Horizontal, "horizontal (rows) or vertical (columns)")
	fs.IntVar(&s.cfg.MaxShift, "max-shift", 0, "rotate each line by a random offset up to this many pixels")
	fs.Uint64Var(&s.cfg.Seed, "seed", 1, "seed for -max-shift")
	fs.IntVar(&s.workers, "workers", 0, "goroutines per image (0 = GOMAXPROCS)")
	fs.IntVar(&s.jobs, "jobs", runtime.GOMAXPROCS(0), "images processed at once")
	fs.BoolVar(&s.legacy, "legacy", false, "legacy byte mode: insertion-sort the first channel of each row")
	fs.Float64Var(&s.scale, "scale", 1, "scale the output by this factor in (0,1]")
	fs.StringVar(&s.outDir, "o", ".", "output directory")
	fs.StringVar(&s.suffix, "suffix", "_sorted", "suffix added to output file names")
	fs.BoolVar(&s.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	s.inputs = fs.Args()

	if len(s.inputs) == 0 {
		fs.Usage()
		return nil, errNoInputs
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if !(s.scale > 0 && s.scale <= 1) {
		return nil, fmt.Errorf("-scale %v out of range (0,1]", s.scale)
	}
	if s.jobs < 1 {
		s.jobs = 1
	}
	return s, nil
}

// checkOutputs rejects input lists in which two files would be written to
// the same destination, e.g. a/photo.png and b/photo.png.
func checkOutputs(s *settings) error {
	seen := make(map[string]string, len(s.inputs))
	for _, in := range s.inputs {
		dst := filepath.Clean(outputPath(in, s.outDir, s.suffix))
		if prev, ok := seen[dst]; ok {
			return fmt.Errorf("%w: %s and %s -> %s", errDuplicateOutput, prev, in, dst)
		}
		seen[dst] = in
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	s, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if err := checkOutputs(s); err != nil {
		return err
	}

	log := newLogger(stderr, s.verbose)
	pixelsort.SetLogger(log)
	defer pixelsort.SetLogger(nil)

	printer := message.NewPrinter(language.English)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)

	for _, in := range s.inputs {
		g.Go(func() error {
			res, err := processFile(gctx, in, s, log)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			printer.Fprintf(stdout, "%s -> %s: %d lines, %d segments, %d pixels sorted\n",
				in, res.output, res.stats.Lines, res.stats.Segments, res.stats.SortedPixels)
			return nil
		})
	}
	return g.Wait()
}
