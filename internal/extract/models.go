package extract

import (
	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/extractors"
	"github.com/urfave/cli/v2"
)

// ExtractOutput is printed instead of the bare record when --trace,
// --snapshot, --language or --save is given.
type ExtractOutput struct {
	RecordID int64                `json:"record_id,omitempty" yaml:"record_id,omitempty"`
	Record   models.Record        `json:"record" yaml:"record"`
	Page     *models.PageMetadata `json:"page,omitempty" yaml:"page,omitempty"`
	Trace    *extractors.Trace    `json:"trace,omitempty" yaml:"trace,omitempty"`
	Snapshot *models.Snapshot     `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
}

// ExtractFlags are the flags of the extract command.
var ExtractFlags = []cli.Flag{
	&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "read HTML from `PATH` instead of fetching the URL"},
	&cli.StringFlag{Name: "strategy", Value: "auto", Usage: "details scan: auto, heading or keyword"},
	&cli.StringFlag{Name: "format", Usage: "output format: json or yaml (default from config)"},
	&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write output to `PATH` instead of stdout"},
	&cli.BoolFlag{Name: "save", Usage: "store the record in the database"},
	&cli.BoolFlag{Name: "snapshot", Usage: "add a readable plain-text snapshot of the page"},
	&cli.BoolFlag{Name: "language", Usage: "detect the language of the description"},
	&cli.BoolFlag{Name: "trace", Usage: "show which strategy and sources produced each field"},
	&cli.DurationFlag{Name: "timeout", Usage: "HTTP timeout (default from config)"},
	&cli.StringFlag{Name: "user-agent", Usage: "HTTP User-Agent header"},
}
