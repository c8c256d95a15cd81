package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// overrideFlag maps a command-line flag to a settings key.
type overrideFlag struct {
	flag  string
	key   string
	usage string
}

var layoutOverrides = []overrideFlag{
	{"page-size", "page.size", "paper size: a4, a5 or letter"},
	{"margin", "page.margin", "page margin in mm"},
	{"columns", "grid.columns", "photos per row"},
	{"cell-gap", "grid.cell_gap", "horizontal gap between photos in mm"},
	{"row-gap", "grid.row_gap", "vertical gap below each row in mm"},
}

var imageOverrides = []overrideFlag{
	{"quality", "image.quality", "JPEG quality 1-100"},
	{"max-dimension", "image.max_dimension", "longest side of embedded photos in pixels"},
	{"compress", "image.compress", "re-encode photos as JPEG"},
}

// addOverrideFlags registers string flags whose values override settings
// for a single run.
func addOverrideFlags(cmd *cobra.Command, overrides []overrideFlag) {
	for _, o := range overrides {
		cmd.Flags().String(o.flag, "", o.usage)
	}
}

// applyOverrides passes every flag the user set to the settings service.
func applyOverrides(cmd *cobra.Command, overrides []overrideFlag) error {
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		value, err := cmd.Flags().GetString(o.flag)
		if err != nil {
			return err
		}
		if err := settingsService.Override(o.key, value); err != nil {
			return fmt.Errorf("--%s: %w", o.flag, err)
		}
	}
	return nil
}

// metadataFlags holds the cover-page fields shared by report commands.
type metadataFlags struct {
	title    string
	project  string
	location string
	author   string
	notes    string
	date     string
}

func (m *metadataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&m.title, "title", "t", "", "report title")
	cmd.Flags().StringVar(&m.project, "project", "", "project or job reference")
	cmd.Flags().StringVar(&m.location, "location", "", "where the photos were taken")
	cmd.Flags().StringVar(&m.author, "author", "", "report author")
	cmd.Flags().StringVar(&m.notes, "notes", "", "notes printed on the cover page")
	cmd.Flags().StringVar(&m.date, "date", "", "report date (YYYY-MM-DD, default today)")
}

// report builds a report from the flag values.
func (m *metadataFlags) report() (domain.Report, error) {
	date, err := parseDate(m.date)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.Report{
		Title:      m.title,
		Project:    m.project,
		Location:   m.location,
		Author:     m.author,
		Notes:      m.notes,
		ReportDate: date,
	}, nil
}

// metadata returns only the fields whose flags were set.
func (m *metadataFlags) metadata(cmd *cobra.Command) (domain.ReportMetadata, error) {
	var meta domain.ReportMetadata
	set := func(flag string, value string) *string {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		return &value
	}
	meta.Title = set("title", m.title)
	meta.Project = set("project", m.project)
	meta.Location = set("location", m.location)
	meta.Author = set("author", m.author)
	meta.Notes = set("notes", m.notes)

	if cmd.Flags().Changed("date") {
		date, err := parseDate(m.date)
		if err != nil {
			return meta, err
		}
		meta.ReportDate = &date
	}
	return meta, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
