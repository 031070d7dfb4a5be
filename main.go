package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dtnitsch/software-meta-parser/internal/db"
	"github.com/dtnitsch/software-meta-parser/internal/extract"
	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "smp",
		Usage: "extract software metadata records from store experience pages",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: models.DefaultConfigFile, Usage: "YAML config `FILE`"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database `PATH` (default: next to the binary)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.BoolFlag{Name: "verbose", Usage: "log debug output"},
		},
		Commands: []*cli.Command{
			{
				Name:      "detect",
				Usage:     "report whether a URL is an experience page",
				ArgsUsage: "<url>",
				Action:    extract.DetectAction,
			},
			{
				Name:      "extract",
				Usage:     "extract the software record of an experience page",
				ArgsUsage: "<url>",
				Flags:     extract.ExtractFlags,
				Action:    extract.ExtractAction,
			},
			{
				Name:  "records",
				Usage: "list stored records",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "show at most `N` records (0 = all)"},
				},
				Action: db.RecordsAction,
			},
			{
				Name:      "record",
				Usage:     "show a stored record and its metadata",
				ArgsUsage: "<id|url>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Usage: "output format: json or yaml"},
					&cli.BoolFlag{Name: "record-only", Usage: "print the bare record"},
				},
				Action: db.RecordAction,
			},
			{
				Name:      "forget",
				Usage:     "delete a stored record",
				ArgsUsage: "<id|url>",
				Action:    db.ForgetAction,
			},
			{
				Name:  "quickstart",
				Usage: "print a short usage guide",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}
