package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/calebsarmiento/Babies-Dogs-Naming/config"
	"github.com/calebsarmiento/Babies-Dogs-Naming/render"
	"github.com/calebsarmiento/Babies-Dogs-Naming/schema"
	"github.com/calebsarmiento/Babies-Dogs-Naming/story"
)

// runner carries what every action needs once global flags are resolved.
type runner struct {
	stdout io.Writer
	stderr io.Writer

	logger   *slog.Logger
	resolved config.ResolvedConfig
	settings config.Settings
}

// setup resolves configuration and builds the logger before any command runs.
func (r *runner) setup(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	} else if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	r.logger = slog.New(slog.NewTextHandler(r.stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := config.ResolveOptions{
		ConfigPath: c.String("config"),
		CLIDataDir: c.String("data-dir"),
		CLIDogs:    c.String("dogs"),
		CLIBabies:  c.String("babies"),
		CLIFormat:  c.String("format"),
	}
	if c.IsSet("min-year") {
		opts.CLIMinYear = strconv.Itoa(c.Int("min-year"))
	}

	resolved, err := config.ResolveConfig(opts)
	if err != nil {
		return err
	}
	settings, err := resolved.Settings()
	if err != nil {
		return err
	}
	r.resolved, r.settings = resolved, settings

	r.logger.Debug("config resolved", "path", resolved.ConfigPath, "dogs", settings.DogPath, "babies", settings.BabyPath, "format", settings.Format)
	return nil
}

// open loads both datasets into a fresh session.
func (r *runner) open() (*story.Session, error) {
	start := time.Now()
	s, err := story.Open(r.settings.DogPath, r.settings.BabyPath,
		story.WithLogger(r.logger),
		story.WithMinYear(r.settings.MinYear),
		story.WithMaxCount(r.settings.MaxCount),
	)
	if err != nil {
		return nil, err
	}
	r.logger.Info("datasets loaded", "dogs", s.Len(story.Dogs), "babies", s.Len(story.Babies), "elapsed", time.Since(start).Round(time.Millisecond))
	return s, nil
}

// output opens the --out file, or stdout. The caller must call the returned close.
func (r *runner) output(c *cli.Context) (io.Writer, func() error, error) {
	path := c.String("out")
	if path == "" {
		return r.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func (r *runner) yearCount(c *cli.Context) (year, count int) {
	year, count = r.settings.DefaultYear, r.settings.DefaultCount
	if c.IsSet("year") {
		year = c.Int("year")
	}
	if c.IsSet("count") {
		count = c.Int("count")
	}
	return year, count
}

// ============================================================================
// ACTIONS
// ============================================================================

func (r *runner) topAction(c *cli.Context) error {
	src, err := story.ParseSource(c.String("dataset"))
	if err != nil {
		return err
	}
	s, err := r.open()
	if err != nil {
		return err
	}

	year, count := r.yearCount(c)
	var sec *story.Section
	if src == story.Babies {
		sec, err = s.TopBabies(year, count)
	} else {
		sec, err = s.TopDogs(year, count)
	}
	if err != nil {
		return err
	}
	return r.emitSection(c, sec)
}

func (r *runner) trendAction(c *cli.Context) error {
	src, err := story.ParseSource(c.String("dataset"))
	if err != nil {
		return err
	}
	s, err := r.open()
	if err != nil {
		return err
	}

	name := c.String("name")
	if err := s.CheckName(src, name); err != nil {
		return err
	}
	if src == story.Babies {
		return r.emitSection(c, s.BabyTrend(name))
	}
	return r.emitSection(c, s.DogTrend(name))
}

func (r *runner) twinsAction(c *cli.Context) error {
	s, err := r.open()
	if err != nil {
		return err
	}

	year, count := r.yearCount(c)
	yearOnly := c.Bool("year-only")

	if name := c.String("name"); name != "" {
		sec, err := s.TwinLookupSection(name, year, yearOnly)
		if err != nil {
			return err
		}
		return r.emitSection(c, sec)
	}

	sec, err := s.Twins(year, count, yearOnly)
	if err != nil {
		return err
	}
	return r.emitSection(c, sec)
}

func (r *runner) namesAction(c *cli.Context) error {
	s, err := r.open()
	if err != nil {
		return err
	}

	var names []string
	if strings.EqualFold(c.String("dataset"), "all") {
		names = s.AllNames()
	} else {
		src, err := story.ParseSource(c.String("dataset"))
		if err != nil {
			return err
		}
		names = s.KnownNames(src)
	}

	w, closeOut, err := r.output(c)
	if err != nil {
		return err
	}
	defer closeOut()

	switch r.settings.Format {
	case "csv":
		return writeListCSV(w, "Name", names)
	case "text":
		_, err := fmt.Fprintln(w, strings.Join(names, "\n"))
		return err
	default:
		return writeValue(w, names, r.settings.Format)
	}
}

func (r *runner) storyAction(c *cli.Context) error {
	image := render.Format(strings.ToLower(c.String("image")))
	if image != render.PNG && image != render.SVG {
		return fmt.Errorf("%w: %s", render.ErrUnsupportedFormat, image)
	}

	s, err := r.open()
	if err != nil {
		return err
	}

	year, count := r.yearCount(c)
	page, err := s.Page(story.Params{
		Year:      year,
		Count:     count,
		BabyName:  c.String("baby-name"),
		DogName:   c.String("dog-name"),
		TwinName:  c.String("twin-name"),
		TwinCount: c.Int("twin-count"),
		YearOnly:  c.Bool("year-only"),
	})
	if err != nil {
		return err
	}

	dir := c.String("dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	charts := make(map[string]string)
	for _, sec := range page.Sections {
		if sec.Chart == nil {
			continue
		}
		file := sec.Key + "." + string(image)
		if err := render.WriteFile(filepath.Join(dir, file), sec.Chart, render.Size{}); err != nil {
			return err
		}
		charts[sec.Key] = file
	}

	if err := writeFileWith(filepath.Join(dir, "story.json"), func(w io.Writer) error {
		return writeValue(w, page, "pretty")
	}); err != nil {
		return err
	}
	if err := writeFileWith(filepath.Join(dir, "story.md"), func(w io.Writer) error {
		return writeMarkdown(w, page, charts)
	}); err != nil {
		return err
	}

	r.logger.Info("story written", "dir", dir, "sections", len(page.Sections), "charts", len(charts))
	_, err = fmt.Fprintf(r.stdout, "📄 Story written to %s (%d sections, %d charts)\n", dir, len(page.Sections), len(charts))
	return err
}

func (r *runner) schemaAction(c *cli.Context) error {
	w, closeOut, err := r.output(c)
	if err != nil {
		return err
	}
	defer closeOut()

	datasets := []schema.Dataset{schema.DogLicenses, schema.BabyNames}
	switch r.settings.Format {
	case "csv", "text":
		return writeSchemaText(w, datasets, r.settings.Format)
	default:
		return writeValue(w, datasets, r.settings.Format)
	}
}

func (r *runner) configAction(c *cli.Context) error {
	w, closeOut, err := r.output(c)
	if err != nil {
		return err
	}
	defer closeOut()

	switch r.settings.Format {
	case "csv", "text":
		return writeConfigText(w, r.resolved, r.settings.Format)
	default:
		return writeValue(w, r.resolved, r.settings.Format)
	}
}

// ============================================================================
// SECTION OUTPUT
// ============================================================================

func (r *runner) emitSection(c *cli.Context, sec *story.Section) error {
	if path := c.String("chart"); path != "" {
		if err := render.WriteFile(path, sec.Chart, render.Size{}); err != nil {
			return err
		}
		r.logger.Info("chart written", "path", path)
	}

	w, closeOut, err := r.output(c)
	if err != nil {
		return err
	}
	if err := writeSection(w, sec, r.settings.Format); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if out := c.String("out"); out != "" {
		r.logger.Info("output written", "path", out, "format", r.settings.Format)
	}
	return nil
}

func writeFileWith(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}
