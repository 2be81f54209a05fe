package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/gardenwatch/internal/wire"
)

// NotifyCmd returns the notify command
func NotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Manage the restock watch list",
		Long: `Choose which items trigger a notification when they restock.

Seed names may be given with or without the " Seeds" suffix.`,
	}

	cmd.AddCommand(notifyAddCmd())
	cmd.AddCommand(notifyRemoveCmd())
	cmd.AddCommand(notifyListCmd())
	cmd.AddCommand(notifyClearCmd())

	return cmd
}

func notifyAddCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "add [item name]",
		Short: "Watch an item",
		Long: `Watch an item. Multi-word names may be given unquoted.
With --all, watch every item of a category.

Examples:
  gardenwatch notify add "Master Sprinkler"
  gardenwatch notify add Bug Egg
  gardenwatch notify add --all seeds`,
		Args: itemArgs(&all),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			defer wire.Close()

			if all {
				return wire.PreferenceAdapter().AddCategory(ctx, args[0])
			}
			return wire.PreferenceAdapter().Add(ctx, itemName(args))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Watch every item of the named category")
	return cmd
}

func notifyRemoveCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "remove [item name]",
		Aliases: []string{"rm"},
		Short:   "Stop watching an item",
		Long: `Stop watching an item.
With --all, stop watching every item of a category.`,
		Args: itemArgs(&all),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			defer wire.Close()

			if all {
				return wire.PreferenceAdapter().RemoveCategory(ctx, args[0])
			}
			return wire.PreferenceAdapter().Remove(ctx, itemName(args))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Stop watching every item of the named category")
	return cmd
}

func notifyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Stop watching every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			defer wire.Close()

			return wire.PreferenceAdapter().Clear(ctx)
		},
	}
}

// itemArgs takes one category when all is set, otherwise an item name.
func itemArgs(all *bool) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if *all {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	}
}

func notifyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List watched items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			defer wire.Close()

			_, err := wire.PreferenceAdapter().List(ctx)
			return err
		},
	}
}

// itemName joins unquoted words back into one item name.
func itemName(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
