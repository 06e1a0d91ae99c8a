package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/arrayhdf/hdf5"
)

// ErrFlagParse is returned when the CLI's own flag validation (shape
// parsing, chunk dimension parsing) fails, distinct from an error
// returned by the hdf5 package itself.
var ErrFlagParse = fmt.Errorf("parsing flags")

func init() {
	// See github.com/urfave/cli/issues/1809: giving HelpFlag a name no one
	// would type keeps `h5write --help` from being parsed as a command.
	cli.HelpFlag = &cli.BoolFlag{
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Write whitespace-separated numbers into an HDF5 v1 file.",
		Description: strings.Join([]string{
			"h5write reads newline/whitespace separated numbers from a file",
			"(or stdin) and writes them as a single HDF5 dataset.",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input file, or \"-\" for stdin", Value: "-"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output HDF5 file path", Required: true},
			&cli.StringFlag{Name: "shape", Aliases: []string{"s"}, Usage: "comma-separated dimension extents, e.g. 4,4", Required: true},
			&cli.StringFlag{Name: "dataset", Aliases: []string{"d"}, Usage: "dataset path", Value: "/data"},
			&cli.StringFlag{Name: "layout", Usage: "contiguous|chunked|auto", Value: "auto"},
			&cli.StringFlag{Name: "chunk-dims", Usage: "comma-separated chunk dimension extents"},
			&cli.StringFlag{Name: "compression", Usage: "none|gzip|lzf", Value: "none"},
			&cli.IntFlag{Name: "gzip-level", Usage: "zlib compression level 1-9", Value: 6},
			&cli.BoolFlag{Name: "help", Aliases: []string{"h"}, Usage: "print this help text and exit", DisableDefaultText: true},
		},
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				return cli.ShowAppHelp(c)
			}
			return run(c)
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err)
			cli.OsExiter(1)
		},
	}
}

func run(c *cli.Context) error {
	shape, err := parseInts(c.String("shape"))
	if err != nil {
		return fmt.Errorf("%w: --shape: %v", ErrFlagParse, err)
	}

	values, err := readValues(c.String("input"))
	if err != nil {
		return err
	}

	arr, err := hdf5.NewArray(shape, hdf5.Float64, values)
	if err != nil {
		return err
	}

	opts := []hdf5.DatasetOption{
		hdf5.WithPath(c.String("dataset")),
	}

	switch c.String("layout") {
	case "contiguous":
		opts = append(opts, hdf5.WithLayout(hdf5.LayoutContiguous))
	case "chunked":
		opts = append(opts, hdf5.WithLayout(hdf5.LayoutChunked))
	case "auto":
	default:
		return fmt.Errorf("%w: --layout: unknown value %q", ErrFlagParse, c.String("layout"))
	}

	if cd := c.String("chunk-dims"); cd != "" {
		dims, err := parseInts(cd)
		if err != nil {
			return fmt.Errorf("%w: --chunk-dims: %v", ErrFlagParse, err)
		}
		opts = append(opts, hdf5.WithChunkDims(dims))
	}

	switch c.String("compression") {
	case "none":
	case "gzip":
		opts = append(opts, hdf5.WithCompression(hdf5.CompressionGzip), hdf5.WithGzipLevel(c.Int("gzip-level")))
	case "lzf":
		opts = append(opts, hdf5.WithCompression(hdf5.CompressionLZF))
	default:
		return fmt.Errorf("%w: --compression: unknown value %q", ErrFlagParse, c.String("compression"))
	}

	return hdf5.WriteArray(context.Background(), c.String("output"), arr, opts...)
}

func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func readValues(input string) ([]float64, error) {
	var r *os.File
	if input == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var values []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("parse value %q: %w", sc.Text(), err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return values, nil
}
