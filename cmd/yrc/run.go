package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/drewfead/yrc/internal/commands"
)

func main() {
	app := &cli.App{
		Name:     "yrc",
		Usage:    "A utility for scraping the YRC Cinemas homepage for upcoming showtimes",
		Commands: commands.Scrapers,
	}
	if err := app.Run(os.Args); err != nil {
		zap.L().Fatal("Fatal error", zap.Error(err))
	}
}
