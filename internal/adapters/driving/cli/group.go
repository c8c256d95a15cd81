package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/grouping"
)

var (
	groupJSON  bool
	layoutJSON bool
)

var groupCmd = &cobra.Command{
	Use:   "group [file-name...]",
	Short: "Group file names by prefix",
	Long: `Group file names the way an export would, without reading any files.

Names are taken from the arguments, or one per line from stdin when no
arguments are given. Directory parts of a path are ignored.

Example:
  ls photos | photoreport group`,
	RunE: runGroup,
}

var layoutCmd = &cobra.Command{
	Use:   "layout [file-name...]",
	Short: "Show how file names would be paginated",
	Long: `Group and paginate file names and print each page's header bars and
photo boxes, in millimetres from the top-left corner of the page.

Names are read like the group command. Layout flags override the
settings file for this run only.`,
	RunE: runLayout,
}

func init() {
	groupCmd.Flags().BoolVar(&groupJSON, "json", false, "output groups as JSON")
	layoutCmd.Flags().BoolVar(&layoutJSON, "json", false, "output pages as JSON")
	addOverrideFlags(layoutCmd, layoutOverrides)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(layoutCmd)
}

type groupOutput struct {
	Key   string   `json:"key"`
	Files []string `json:"files"`
}

type pageOutput struct {
	Page       int               `json:"page"`
	Headers    []headerOutput    `json:"headers"`
	Placements []placementOutput `json:"placements"`
}

type headerOutput struct {
	Group string  `json:"group"`
	Count int     `json:"count"`
	Y     float64 `json:"y"`
}

type placementOutput struct {
	File   string  `json:"file"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func runGroup(cmd *cobra.Command, args []string) error {
	items, err := itemsFromInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	groups := grouping.Group(items)
	if groupJSON {
		return printJSON(cmd, groupOutputs(groups))
	}

	if len(groups) == 0 {
		cmd.Println("No files given.")
		return nil
	}
	for _, g := range groups {
		heading(cmd, fmt.Sprintf("%s (%d)", groupLabel(g.Key), len(g.Items)))
		for _, item := range g.Items {
			cmd.Printf("  %s\n", item.DisplayName)
		}
	}
	return nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}
	if err := applyOverrides(cmd, layoutOverrides); err != nil {
		return err
	}

	items, err := itemsFromInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	plan, err := exportService.Plan(items)
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}

	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.DisplayName
	}
	pages := pageOutputs(plan, names)

	if layoutJSON {
		return printJSON(cmd, pages)
	}

	if len(pages) == 0 {
		cmd.Println("No files given.")
		return nil
	}
	cmd.Printf("%d group(s) on %d page(s), %sx%s mm, %d column(s)\n",
		len(plan.Groups), len(pages), formatMM(plan.Page.Width), formatMM(plan.Page.Height), plan.Grid.Columns)
	for _, page := range pages {
		cmd.Println()
		heading(cmd, fmt.Sprintf("Page %d of %d", page.Page, len(pages)))
		for _, h := range page.Headers {
			cmd.Printf("  [%s] %d photo(s) %s\n", groupLabel(h.Group), h.Count, muted(cmd, "y="+formatMM(h.Y)))
		}
		for _, p := range page.Placements {
			box := fmt.Sprintf("x=%s y=%s %sx%s", formatMM(p.X), formatMM(p.Y), formatMM(p.Width), formatMM(p.Height))
			cmd.Printf("    %-32s %s\n", p.File, muted(cmd, box))
		}
	}
	return nil
}

// itemsFromInput builds items from args, or from stdin lines when args is
// empty. Sequence numbers serve as IDs so duplicate names stay distinct.
func itemsFromInput(stdin io.Reader, args []string) ([]domain.Item, error) {
	names := args
	if len(names) == 0 && stdin != nil {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				names = append(names, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read names: %w", err)
		}
	}

	items := make([]domain.Item, 0, len(names))
	for i, name := range names {
		item, err := grouping.NewItem(strconv.Itoa(i+1), filepath.Base(name), domain.DefaultAspectRatio)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func groupOutputs(groups []domain.Group) []groupOutput {
	out := make([]groupOutput, len(groups))
	for i, g := range groups {
		files := make([]string, len(g.Items))
		for j, item := range g.Items {
			files[j] = item.DisplayName
		}
		out[i] = groupOutput{Key: g.Key, Files: files}
	}
	return out
}

func pageOutputs(plan *domain.ExportPlan, names map[string]string) []pageOutput {
	out := make([]pageOutput, len(plan.Pages))
	for i, page := range plan.Pages {
		po := pageOutput{
			Page:       page.PageIndex,
			Headers:    make([]headerOutput, len(page.Headers)),
			Placements: make([]placementOutput, len(page.Placements)),
		}
		for j, h := range page.Headers {
			po.Headers[j] = headerOutput{Group: h.GroupKey, Count: h.ItemCount, Y: h.Y}
		}
		for j, p := range page.Placements {
			po.Placements[j] = placementOutput{File: names[p.ItemID], X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
		}
		out[i] = po
	}
	return out
}

func groupLabel(key string) string {
	if key == "" {
		return "(ungrouped)"
	}
	return key
}
