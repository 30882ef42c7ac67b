package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/vehicle-dashboard/internal/dto"
	"github.com/GregMSThompson/vehicle-dashboard/internal/layout"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List widgets in row-major order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(_ context.Context, e *layout.Engine) error {
				widgets := e.List()
				if len(widgets) == 0 {
					printf(cmd, "no widgets\n")
					return nil
				}
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("ID", "TYPE", "SIZE", "X", "Y", "TITLE")
				for _, w := range sortedByPosition(widgets) {
					t.Row(w.ID, string(w.Type), string(w.Size), strconv.Itoa(w.Position.X), strconv.Itoa(w.Position.Y), w.Title)
				}
				printf(cmd, "%s\n", t.Render())
				return nil
			})
		},
	}
}

func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Draw the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(_ context.Context, e *layout.Engine) error {
				out, err := RenderGrid(e.List(), e.Columns())
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", out)
				return nil
			})
		},
	}
}

func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the widget types that can be added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("TYPE", "DEFAULT TITLE", "DEFAULT SIZE", "COLOR")
			for _, entry := range dto.WidgetCatalog {
				t.Row(string(entry.Type), entry.DefaultTitle, string(entry.DefaultSize), entry.DefaultColor)
			}
			printf(cmd, "%s\n", t.Render())
			return nil
		},
	}
}

func (c *CLI) addCommand() *cobra.Command {
	var (
		widgetType string
		title      string
		size       string
		color      string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a widget at the first free slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := dto.CatalogEntry(models.WidgetType(widgetType))
			if !ok {
				return fmt.Errorf("unknown widget type %q (see %s types)", widgetType, appName)
			}
			spec := layout.WidgetSpec{
				Type:  entry.Type,
				Title: strings.TrimSpace(title),
				Size:  models.SizeClass(size),
				Color: color,
			}
			if spec.Title == "" {
				spec.Title = entry.DefaultTitle
			}
			if spec.Size == "" {
				spec.Size = entry.DefaultSize
			}
			if spec.Color == "" {
				spec.Color = entry.DefaultColor
			}

			return c.withSession(cmd, func(ctx context.Context, e *layout.Engine) error {
				w, err := e.AddWidget(ctx, spec)
				if err != nil {
					return err
				}
				printf(cmd, "added %s at (%d,%d)\n", w.ID, w.Position.X, w.Position.Y)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&widgetType, "type", "", "widget type")
	cmd.Flags().StringVar(&title, "title", "", "widget title (default from catalog)")
	cmd.Flags().StringVar(&size, "size", "", "small, medium or large (default from catalog)")
	cmd.Flags().StringVar(&color, "color", "", "accent color (default from catalog)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, e *layout.Engine) error {
				if err := e.RemoveWidget(ctx, args[0]); err != nil {
					return err
				}
				printf(cmd, "removed %s\n", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move ID X Y",
		Short: "Move a widget so its top-left corner is at X,Y",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x %q", args[1])
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y %q", args[2])
			}
			return c.withSession(cmd, func(ctx context.Context, e *layout.Engine) error {
				w, err := e.MoveWidget(ctx, args[0], models.Position{X: x, Y: y})
				if err != nil {
					return err
				}
				printf(cmd, "moved %s to (%d,%d)\n", w.ID, w.Position.X, w.Position.Y)
				return nil
			})
		},
	}
}

func (c *CLI) resizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resize ID SIZE",
		Short: "Change a widget's size class in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, e *layout.Engine) error {
				w, err := e.ResizeWidget(ctx, args[0], models.SizeClass(args[1]))
				if err != nil {
					return err
				}
				printf(cmd, "resized %s to %s\n", w.ID, w.Size)
				return nil
			})
		},
	}
}

func (c *CLI) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID TITLE",
		Short: "Change a widget's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, e *layout.Engine) error {
				w, err := e.RenameWidget(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				printf(cmd, "renamed %s to %q\n", w.ID, w.Title)
				return nil
			})
		},
	}
}
