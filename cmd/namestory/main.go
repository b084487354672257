package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// ============================================================================
// NAMESTORY CLI — Babies vs Dogs, one command per section of the story
// ============================================================================

const version = "0.1.0"

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run builds and runs the app. Errors are returned, never turned into exits,
// so tests can drive the whole CLI in-process.
func run(args []string, stdout, stderr io.Writer) error {
	r := &runner{stdout: stdout, stderr: stderr}

	app := &cli.App{
		Name:      "namestory",
		Usage:     "compare how babies and dogs are named",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Description: `Loads the SSA baby name data (humandata.csv) and the Allegheny County
dog license data (dogdata.csv) and answers the questions of the story:
the top names of a year, how one name trends over time, and which baby
names are also dog names.

Examples:
  namestory top --dataset babies --year 2015 --count 10
  namestory --format csv --out dogs.csv top --dataset dogs --year 2018
  namestory trend --dataset babies --name Charlie --chart charlie.png
  namestory twins --year 2015 --count 20 --name Luna
  namestory story --year 2015 --baby-name Luna --dog-name Luna --dir out`,
		Flags:          globalFlags(),
		Before:         r.setup,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "top",
				Usage:  "most common names of one year",
				Flags:  append(yearCountFlags(), datasetFlag("babies"), chartFlag()),
				Action: r.topAction,
			},
			{
				Name:   "trend",
				Usage:  "one name across every year",
				Flags:  []cli.Flag{datasetFlag("babies"), nameFlag(true), chartFlag()},
				Action: r.trendAction,
			},
			{
				Name:  "twins",
				Usage: "dog names that are also baby names of a year",
				Flags: append(yearCountFlags(),
					&cli.BoolFlag{Name: "year-only", Usage: "count dogs licensed in --year only instead of all years"},
					nameFlag(false),
					chartFlag(),
				),
				Action: r.twinsAction,
			},
			{
				Name:   "names",
				Usage:  "list the known names of a dataset",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "dataset", Aliases: []string{"d"}, Value: "all", Usage: "dogs, babies or all"}},
				Action: r.namesAction,
			},
			{
				Name:  "story",
				Usage: "write every section of the story: narrative, tables and charts",
				Flags: append(yearCountFlags(),
					&cli.StringFlag{Name: "baby-name", Value: "Luna", Usage: "name for the baby trend section"},
					&cli.StringFlag{Name: "dog-name", Value: "Luna", Usage: "name for the dog trend section"},
					&cli.StringFlag{Name: "twin-name", Usage: "name for the twin lookup section"},
					&cli.IntFlag{Name: "twin-count", Usage: "names in the twins chart (default --count)"},
					&cli.BoolFlag{Name: "year-only", Usage: "twins count dogs licensed in --year only"},
					&cli.StringFlag{Name: "dir", Value: "story", Usage: "output directory"},
					&cli.StringFlag{Name: "image", Value: "png", Usage: "chart image format: png or svg"},
				),
				Action: r.storyAction,
			},
			{
				Name:   "schema",
				Usage:  "print the schemas of both source files",
				Action: r.schemaAction,
			},
			{
				Name:   "config",
				Usage:  "print the resolved configuration and where each value came from",
				Action: r.configAction,
			},
		},
	}

	return app.Run(args)
}

// ============================================================================
// FLAGS
// ============================================================================

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "config file (default ~/.namestory/config.yaml, env NAMESTORY_CONFIG)"},
		&cli.StringFlag{Name: "data-dir", Usage: "directory holding the data files (env NAMESTORY_DATA_DIR)"},
		&cli.StringFlag{Name: "dogs", Usage: "dog license CSV (env NAMESTORY_DOGS)"},
		&cli.StringFlag{Name: "babies", Usage: "baby name CSV (env NAMESTORY_BABIES)"},
		&cli.IntFlag{Name: "min-year", Usage: "drop records before this year (env NAMESTORY_MIN_YEAR)"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format: json, pretty, yaml, csv, text"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write output to file instead of stdout"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Usage: "log computation detail"},
	}
}

func yearCountFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "year to show (default from config)"},
		&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "number of names to show, 1-100 (default from config)"},
	}
}

func datasetFlag(value string) cli.Flag {
	return &cli.StringFlag{Name: "dataset", Aliases: []string{"d"}, Value: value, Usage: "dogs or babies"}
}

func nameFlag(required bool) cli.Flag {
	return &cli.StringFlag{Name: "name", Required: required, Usage: "name to look up (any case)"}
}

func chartFlag() cli.Flag {
	return &cli.StringFlag{Name: "chart", Usage: "also render the chart to this .png or .svg file"}
}
