package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-science/internal/imaging"
	"github.com/ironsheep/image-science/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before touching the logger
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-science %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Codec:      %s\n", imaging.Version())
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		}
	}

	log := newLogger(os.Getenv("IMAGE_SCIENCE_LOG_LEVEL"))
	engine := imaging.NewEngine(imaging.WithLogger(log))

	if len(os.Args) > 1 {
		if err := runCommand(engine, os.Stdout, os.Args[1:]); err != nil {
			log.WithError(err).Error("command failed")
			os.Exit(1)
		}
		return
	}

	log.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("Image Science MCP server starting")

	server.Version = Version
	srv := server.New(engine, log)
	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("Server error")
	}
}

// newLogger logs to stderr (stdout is for MCP protocol) at the given level,
// defaulting to info.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	log.SetLevel(logrus.InfoLevel)
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			log.WithField("level", level).Warn("unknown log level, using info")
		} else {
			log.SetLevel(lvl)
		}
	}
	return log
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "image-science - image decoding, resizing and inspection")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: image-science [options]")
	fmt.Fprintln(w, "       image-science <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command the MCP server runs on stdin/stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  info <image>                          Print image metadata as JSON")
	fmt.Fprintln(w, "  type <image>                          Print the detected format")
	fmt.Fprintln(w, "  color <image> <x> <y>                 Print the color at a pixel")
	fmt.Fprintln(w, "  crop <image> <l> <t> <r> <b> <out>    Crop a region")
	fmt.Fprintln(w, "  resize <image> <w> <h> <out>          Resize to exact dimensions")
	fmt.Fprintln(w, "  thumbnail <image> <size> <out>        Scale the longest edge to size")
	fmt.Fprintln(w, "  square <image> <size> <out>           Center-cropped square thumbnail")
	fmt.Fprintln(w, "  fit <image> <w> <h> <out>             Shrink to fit within w x h")
	fmt.Fprintln(w, "  convert <image> <out>                 Save in the format of out")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  IMAGE_SCIENCE_LOG_LEVEL=debug    Log level (debug, info, warn, error)")
}

// command describes a one-shot subcommand. ints lists how many integer
// arguments follow the input path.
type command struct {
	ints   int
	output bool
	run    func(img *imaging.Session, n []int, out string) (interface{}, error)
}

// colorResult reports a pixel lookup. Found is false when the coordinate
// resolves to no color.
type colorResult struct {
	X     int                  `json:"x"`
	Y     int                  `json:"y"`
	Found bool                 `json:"found"`
	Color *imaging.ColorResult `json:"color,omitempty"`
}

var commands = map[string]command{
	"info": {run: func(img *imaging.Session, _ []int, _ string) (interface{}, error) {
		return img.Info()
	}},
	"color": {ints: 2, run: func(img *imaging.Session, n []int, _ string) (interface{}, error) {
		c, err := img.SampleColor(n[0], n[1])
		if err != nil {
			return nil, err
		}
		return colorResult{X: n[0], Y: n[1], Found: c != nil, Color: c}, nil
	}},
	"crop": {ints: 4, output: true, run: func(img *imaging.Session, n []int, out string) (interface{}, error) {
		return nil, img.Crop(n[0], n[1], n[2], n[3], save(out))
	}},
	"resize": {ints: 2, output: true, run: func(img *imaging.Session, n []int, out string) (interface{}, error) {
		return nil, img.Resize(n[0], n[1], save(out))
	}},
	"thumbnail": {ints: 1, output: true, run: func(img *imaging.Session, n []int, out string) (interface{}, error) {
		return nil, img.Thumbnail(n[0], save(out))
	}},
	"square": {ints: 1, output: true, run: func(img *imaging.Session, n []int, out string) (interface{}, error) {
		return nil, img.CroppedThumbnail(n[0], save(out))
	}},
	"fit": {ints: 2, output: true, run: func(img *imaging.Session, n []int, out string) (interface{}, error) {
		return nil, img.FitWithin(n[0], n[1], save(out))
	}},
	"convert": {output: true, run: func(img *imaging.Session, _ []int, out string) (interface{}, error) {
		return nil, save(out)(img)
	}},
}

func save(path string) func(*imaging.Session) error {
	return func(img *imaging.Session) error {
		ok, err := img.Save(path)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Errorf("failed to save %s", path)
		}
		return nil
	}
}

// runCommand executes a one-shot subcommand and writes its result to w.
func runCommand(engine *imaging.Engine, w io.Writer, args []string) error {
	name, args := args[0], args[1:]

	if name == "type" {
		if len(args) != 1 {
			return errors.New("usage: type <image>")
		}
		fmt.Fprintln(w, engine.ImageType(args[0]))
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		return errors.Errorf("unknown command: %s (see --help)", name)
	}

	want := 1 + cmd.ints
	if cmd.output {
		want++
	}
	if len(args) != want {
		return errors.Errorf("%s: expected %d arguments, got %d", name, want, len(args))
	}

	n := make([]int, cmd.ints)
	for i := range n {
		v, err := strconv.Atoi(args[1+i])
		if err != nil {
			return errors.Wrapf(err, "%s: argument %d", name, i+2)
		}
		n[i] = v
	}
	var out string
	if cmd.output {
		out = args[len(args)-1]
	}

	var result interface{}
	err := engine.Load(args[0], func(img *imaging.Session) (err error) {
		result, err = cmd.run(img, n, out)
		return err
	})
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
