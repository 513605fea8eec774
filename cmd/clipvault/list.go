package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clipvault/clipvault/internal/clip"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newListCmd() *cobra.Command {
	var (
		tagFilter      string
		kindFilter     string
		includeTrashed bool
		pinnedOnly     bool
		format         string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, pinned first then newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := database.ListFilter{
				Tag:            tagFilter,
				IncludeTrashed: includeTrashed,
			}
			if kindFilter != "" {
				kind, err := clip.ParseKind(kindFilter)
				if err != nil {
					return err
				}
				filter.Kind = kind
			}

			dbCtx, store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			ctx := context.Background()
			uc := usecase.NewEntry(dbCtx, store, 0)

			items, err := uc.List(ctx, filter)
			if err != nil {
				return err
			}
			if pinnedOnly {
				pinned := items[:0]
				for _, item := range items {
					if item.Pinned {
						pinned = append(pinned, item)
					}
				}
				items = pinned
			}

			switch format {
			case "json":
				return outputJSON(cmd, items)
			case "table":
				outputTable(cmd, items, includeTrashed)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&tagFilter, "tag", "t", "", "Only entries carrying this tag")
	cmd.Flags().StringVarP(&kindFilter, "kind", "k", "", "Only entries of this kind: text, url, image, or file")
	cmd.Flags().BoolVar(&includeTrashed, "trashed", false, "Include trashed entries")
	cmd.Flags().BoolVar(&pinnedOnly, "pinned", false, "Only pinned entries")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

type listOutputEntry struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Label   string   `json:"label"`
	Tags    []string `json:"tags,omitempty"`
	Pinned  *bool    `json:"pinned,omitempty"`
	Trashed *bool    `json:"trashed,omitempty"`
	Created string   `json:"created"`
}

func outputJSON(cmd *cobra.Command, items []usecase.Item) error {
	var output []listOutputEntry

	for _, item := range items {
		out := listOutputEntry{
			ID:      item.ID,
			Kind:    string(item.Kind),
			Label:   itemLabel(item),
			Tags:    item.Tags,
			Created: item.CreatedAt.Format(time.RFC3339),
		}
		if item.Pinned {
			pinned := true
			out.Pinned = &pinned
		}
		if item.Trashed {
			trashed := true
			out.Trashed = &trashed
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func itemLabel(item usecase.Item) string {
	entry := clip.Entry{Content: item.Content}
	if item.DisplayLabel != nil {
		entry.DisplayLabel = *item.DisplayLabel
	}
	label := entry.Label()
	if idx := strings.IndexAny(label, "\r\n"); idx >= 0 {
		label = label[:idx] + "…"
	}
	return label
}

// shortID abbreviates an id for table display. Imported ids are arbitrary
// strings, so they can be shorter than the uuid prefix we normally show.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func outputTable(cmd *cobra.Command, items []usecase.Item, includeTrashed bool) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	// Fixed columns: short id (8), kind (5), pin marker, created (16).
	// The label and tag columns share whatever width remains.
	termWidth := getTerminalWidth()
	fixed := 8 + 5 + 3 + 16
	numColumns := 6
	if includeTrashed {
		numColumns = 7
		fixed += 7
	}
	available := termWidth - fixed - numColumns*3
	labelWidth := available * 2 / 3
	if labelWidth < 20 {
		labelWidth = 20
	}
	tagWidth := available - labelWidth
	if tagWidth < 10 {
		tagWidth = 10
	}

	if includeTrashed {
		t.AppendHeader(table.Row{"ID", "Kind", "Pin", "Label", "Tags", "Created", "Trashed"})
	} else {
		t.AppendHeader(table.Row{"ID", "Kind", "Pin", "Label", "Tags", "Created"})
	}

	for _, item := range items {
		pin := ""
		if item.Pinned {
			pin = "*"
		}
		label := runewidth.Truncate(itemLabel(item), labelWidth, "...")
		tags := runewidth.Truncate(strings.Join(item.Tags, ","), tagWidth, "...")
		created := item.CreatedAt.Format("2006-01-02 15:04")

		if includeTrashed {
			trashed := ""
			if item.Trashed {
				trashed = "yes"
			}
			t.AppendRow(table.Row{shortID(item.ID), item.Kind, pin, label, tags, created, trashed})
		} else {
			t.AppendRow(table.Row{shortID(item.ID), item.Kind, pin, label, tags, created})
		}
	}

	t.Render()
}
