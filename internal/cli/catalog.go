package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/wire"
)

// CatalogCmd returns the catalog command
func CatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [category]",
		Short: "List the known items of a shop",
		Long: `List the items each shop can stock, with their rarity.

Examples:
  gardenwatch catalog
  gardenwatch catalog eggs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := catalogCategories(args)
			if err != nil {
				return err
			}
			wire.CatalogAdapter().List(categories)
			return nil
		},
	}
}

func catalogCategories(args []string) ([]category.Category, error) {
	if len(args) == 0 {
		return category.All(), nil
	}
	c, err := category.Parse(args[0])
	if err != nil {
		return nil, err
	}
	return []category.Category{c}, nil
}
