package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/drewfead/yrc/internal/core"
	"github.com/drewfead/yrc/internal/yrc"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	profileFlag = &cli.BoolFlag{
		Name:  "profile",
		Usage: "Enable pprof profiling for this run",
		Value: false,
	}

	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Set the verbosity of the logger",
		Value: "info",
	}

	outputFormatFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Set the output format (text or json)",
		Value:   "text",
	}

	urlFlag = &cli.StringFlag{
		Name:    "url",
		Usage:   "Homepage to scrape",
		EnvVars: []string{"YRC_URL"},
		Value:   yrc.DefaultBaseURL,
	}

	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Request timeout; zero keeps the HTTP client default",
	}

	timezoneFlag = &cli.StringFlag{
		Name:  "timezone",
		Usage: "Time zone used to resolve showtimes in json output",
		Value: "Local",
	}

	parseFlag = &cli.BoolFlag{
		Name:  "parse",
		Usage: "Parse the repaired text and print the listings instead of the text",
	}
)

func setup(ctx *cli.Context) ([]func(), error) {
	zapCfg := zap.NewDevelopmentConfig()
	level, err := zap.ParseAtomicLevel(ctx.String(verbosityFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	zapCfg.Level = level
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger.With(zap.String("run_id", uuid.NewString())))
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		zap.L().Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		zap.L().Warn("Failed to set GOMAXPROCS", zap.Error(err))
	}

	out := []func(){
		func() { _ = zap.L().Sync() },
	}

	if ctx.Bool(profileFlag.Name) {
		cpuProfile, err := os.Create("/tmp/cpu_profile.prof")
		if err != nil {
			return out, err
		}

		if err := pprof.StartCPUProfile(cpuProfile); err != nil {
			return out, err
		}

		out = append(out, func() {
			pprof.StopCPUProfile()
			cpuProfile.Close()
		})

		memProfile, err := os.Create("/tmp/memory_profile.prof")
		if err != nil {
			return out, err
		}

		out = append(out, func() {
			defer memProfile.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(memProfile); err != nil {
				zap.L().Error("Failed to write heap profile", zap.Error(err))
			}
		})
	}

	return out, nil
}

func cleanup(ctx *cli.Context, steps ...func()) {
	for i := len(steps) - 1; i >= 0; i-- {
		steps[i]()
	}
}

type showingOutput struct {
	core.Showing
	StartsAt *time.Time `json:"startsAt,omitempty"`
}

type showOutput struct {
	core.Show
	Times []showingOutput `json:"times"`
}

type listingOutput struct {
	Date  string       `json:"date"`
	Shows []showOutput `json:"shows"`
}

func jsonListings(listings []core.Listing, tz *time.Location) []listingOutput {
	out := make([]listingOutput, 0, len(listings))
	for _, l := range listings {
		lo := listingOutput{Date: l.Date, Shows: make([]showOutput, 0, len(l.Shows))}
		for _, s := range l.Shows {
			so := showOutput{Show: s, Times: make([]showingOutput, 0, len(s.Times))}
			for _, st := range s.Times {
				sto := showingOutput{Showing: st}
				if at, ok := yrc.ParseShowtime(l.Date, st.Time.String(), tz); ok {
					sto.StartsAt = &at
				}
				so.Times = append(so.Times, sto)
			}
			lo.Shows = append(lo.Shows, so)
		}
		out = append(out, lo)
	}
	return out
}

func results(ctx *cli.Context, listings []core.Listing) error {
	switch ctx.String(outputFormatFlag.Name) {
	case "text":
		return yrc.Print(ctx.App.Writer, listings)
	case "json":
		tz, err := time.LoadLocation(ctx.String(timezoneFlag.Name))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(ctx.App.Writer)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(jsonListings(listings, tz))
	default:
		return fmt.Errorf("unsupported output format %s", ctx.String(outputFormatFlag.Name))
	}
}

// reportParseFailure logs the start of the text that failed to parse.
func reportParseFailure(err error) {
	var parseErr *yrc.ParseError
	if errors.As(err, &parseErr) {
		zap.L().Error("Failed to parse movie data",
			zap.Error(parseErr.Err),
			zap.Int64("offset", parseErr.Offset),
			zap.String("snippet", parseErr.Snippet),
		)
	}
}

// readInput reads the first argument as a file, or stdin when there is none.
func readInput(c *cli.Context) (string, error) {
	if c.Args().Len() == 0 {
		b, err := io.ReadAll(c.App.Reader)
		return string(b), err
	}
	b, err := os.ReadFile(c.Args().First())
	return string(b), err
}

var Scrapers = []*cli.Command{
	{
		Name:     "showtimes",
		Usage:    "Print the showtimes listed on the YRC Cinemas homepage",
		Category: "theatrical",
		Flags: []cli.Flag{
			verbosityFlag,
			profileFlag,
			outputFormatFlag,
			urlFlag,
			timeoutFlag,
			timezoneFlag,
		},
		Action: func(c *cli.Context) error {
			cleanupSteps, err := setup(c)
			defer cleanup(c, cleanupSteps...)
			if err != nil {
				return err
			}

			s := &yrc.Scraper{
				BaseURL: c.String(urlFlag.Name),
				Timeout: c.Duration(timeoutFlag.Name),
				Headers: map[string]string{
					"User-Agent": userAgent,
					"Referer":    c.String(urlFlag.Name),
				},
			}

			listings, err := s.Listings(c.Context)
			if err != nil {
				reportParseFailure(err)
				return err
			}

			zap.L().Debug("Scraped listings", zap.Int("dates", len(listings)))
			return results(c, listings)
		},
	},
	{
		Name:      "extract",
		Usage:     "Print the movieData literal embedded in a saved homepage",
		Category:  "debugging",
		ArgsUsage: "[html file]",
		Flags: []cli.Flag{
			verbosityFlag,
		},
		Action: func(c *cli.Context) error {
			cleanupSteps, err := setup(c)
			defer cleanup(c, cleanupSteps...)
			if err != nil {
				return err
			}

			page, err := readInput(c)
			if err != nil {
				return err
			}
			literal, err := yrc.Extract(page)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, literal)
			return err
		},
	},
	{
		Name:      "repair",
		Usage:     "Repair a movieData literal into JSON",
		Category:  "debugging",
		ArgsUsage: "[literal file]",
		Flags: []cli.Flag{
			verbosityFlag,
			outputFormatFlag,
			timezoneFlag,
			parseFlag,
		},
		Action: func(c *cli.Context) error {
			cleanupSteps, err := setup(c)
			defer cleanup(c, cleanupSteps...)
			if err != nil {
				return err
			}

			literal, err := readInput(c)
			if err != nil {
				return err
			}
			repaired, err := yrc.Repair(literal)
			if err != nil {
				return err
			}
			if !c.Bool(parseFlag.Name) {
				_, err = fmt.Fprintln(c.App.Writer, repaired)
				return err
			}

			listings, err := yrc.Parse(repaired)
			if err != nil {
				reportParseFailure(err)
				return err
			}
			return results(c, listings)
		},
	},
}
