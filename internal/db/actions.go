package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dtnitsch/software-meta-parser/internal/common"
	dbpkg "github.com/dtnitsch/software-meta-parser/pkg/db"
	"github.com/dtnitsch/software-meta-parser/pkg/storage"
	"github.com/urfave/cli/v2"
)

// RecordDetails is what `smp record` prints.
type RecordDetails struct {
	*dbpkg.StoredRecord `yaml:",inline"`
	Meta                map[string]map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

func openDatabase(c *cli.Context) (*dbpkg.DB, string, error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, "", err
	}
	database, err := dbpkg.Open(cfg.Database.Path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}
	return database, cfg.Output.Format, nil
}

// RecordsAction lists stored records.
func RecordsAction(c *cli.Context) error {
	database, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := database.ListRecords(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	w := c.App.Writer
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-30s %-25s %-12s\n", "ID", "Updated", "Title", "Developer", "Version")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range records {
		fmt.Fprintf(w, "%-6d %-20s %-30s %-25s %-12s\n",
			r.ID,
			r.UpdatedAt.Format("2006-01-02 15:04:05"),
			truncate(r.Record.Title, 30),
			truncate(r.Record.Developer(), 25),
			r.Record.Version,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d records\n", len(records))
	fmt.Fprintf(w, "\nTip: Use 'smp record <id>' to see details\n")
	return nil
}

// RecordAction prints one record with its metadata.
func RecordAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: No record given\n\nUsage:\n  smp record <id|url>", 1)
	}

	database, format, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	rec, err := ResolveRecord(c.Args().First(), database)
	if errors.Is(err, dbpkg.ErrNotFound) {
		return cli.Exit(fmt.Sprintf("no record for %s", c.Args().First()), 1)
	}
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	details := RecordDetails{StoredRecord: rec}
	if !c.Bool("record-only") {
		meta, err := database.GetRecordMeta(rec.ID)
		if err != nil {
			return err
		}
		for _, m := range meta {
			if details.Meta == nil {
				details.Meta = make(map[string]map[string]string)
			}
			if details.Meta[m.Namespace] == nil {
				details.Meta[m.Namespace] = make(map[string]string)
			}
			details.Meta[m.Namespace][m.Key] = m.Value
		}
	}

	s := &storage.Storage{}
	if c.Bool("record-only") {
		return s.Write(c.App.Writer, rec.Record, format)
	}
	return s.Write(c.App.Writer, details, format)
}

// ForgetAction deletes a stored record.
func ForgetAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: No record given\n\nUsage:\n  smp forget <id|url>", 1)
	}

	database, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	rec, err := ResolveRecord(c.Args().First(), database)
	if errors.Is(err, dbpkg.ErrNotFound) {
		return cli.Exit(fmt.Sprintf("no record for %s", c.Args().First()), 1)
	}
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if err := database.DeleteRecord(rec.ID); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Forgot record %d (%s)\n", rec.ID, rec.Record.Title)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
