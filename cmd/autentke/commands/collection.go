package commands

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/autentke/autentke/internal/app"
	"github.com/autentke/autentke/internal/collection"
	"github.com/autentke/autentke/internal/pricing"
)

var (
	// Collection flags
	collectionName    string
	collectionPieces  int
	collectionFreight string
	collectionExtras  string
	liquidateMarkup   string
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"collections", "col"},
	Short:   "Manage collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections with their per-piece overhead",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			cs, err := a.Collections.List(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cs)
			}

			rows := make([][]string, 0, len(cs))
			for _, c := range cs {
				rows = append(rows, []string{
					c.ID.String(), c.Name, strconv.Itoa(c.Pieces),
					pricing.FormatBRL(c.Freight), pricing.FormatBRL(c.Extras),
					pricing.FormatBRL(c.Rateio().Round(0).IntPart()),
				})
			}

			printTable([]string{"ID", "NAME", "PIECES", "FREIGHT", "EXTRAS", "RATEIO"}, rows, 2, 3, 4, 5)

			return nil
		})
	},
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new collection",
	Long: `Register a new collection.

Examples:
  autentke collection create --name "Lote Junho" --pieces 40 --freight 120,00 --extras 35,50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		freight, err := optionalAmount(collectionFreight)
		if err != nil {
			return fmt.Errorf("invalid freight: %w", err)
		}

		extras, err := optionalAmount(collectionExtras)
		if err != nil {
			return fmt.Errorf("invalid extras: %w", err)
		}

		return withApp(cmd.Context(), func(a *app.App) error {
			c, err := a.Collections.Create(cmd.Context(), collection.Params{
				Name:    collectionName,
				Pieces:  collectionPieces,
				Freight: freight,
				Extras:  extras,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(c)
			}

			success("created %s (%s)", c.Name, c.ID)

			return nil
		})
	},
}

var collectionLiquidateCmd = &cobra.Command{
	Use:   "liquidate <collection-id>",
	Short: "Reprice every unsold product of a collection",
	Long: `Reprice every unsold product of a collection with a new markup. Either all
products are repriced or none is.

Examples:
  autentke collection liquidate 6f1c... --markup 1,8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid collection id: %w", err)
		}

		markup, err := pricing.ParseDecimal(liquidateMarkup)
		if err != nil {
			return fmt.Errorf("invalid markup: %w", err)
		}

		return withApp(cmd.Context(), func(a *app.App) error {
			n, err := a.Products.Liquidate(cmd.Context(), id, markup)
			if err != nil {
				return err
			}

			success("%d product(s) repriced with markup %s", n, pricing.FormatDecimal(markup))

			return nil
		})
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete <collection-id>",
	Short: "Delete a collection without products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid collection id: %w", err)
		}

		return withApp(cmd.Context(), func(a *app.App) error {
			if err := a.Collections.Delete(cmd.Context(), id); err != nil {
				return err
			}

			success("collection %s deleted", id)

			return nil
		})
	},
}

func optionalAmount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	return pricing.ParseAmount(s)
}

func init() {
	rootCmd.AddCommand(collectionCmd)
	collectionCmd.AddCommand(collectionListCmd, collectionCreateCmd, collectionLiquidateCmd, collectionDeleteCmd)

	collectionCreateCmd.Flags().StringVar(&collectionName, "name", "", "Collection name")
	collectionCreateCmd.Flags().IntVar(&collectionPieces, "pieces", 0, "Number of pieces in the batch")
	collectionCreateCmd.Flags().StringVar(&collectionFreight, "freight", "", "Freight paid for the batch (R$)")
	collectionCreateCmd.Flags().StringVar(&collectionExtras, "extras", "", "Gifts and packaging sent with the batch (R$)")
	_ = collectionCreateCmd.MarkFlagRequired("name")
	_ = collectionCreateCmd.MarkFlagRequired("pieces")

	collectionLiquidateCmd.Flags().StringVar(&liquidateMarkup, "markup", "", "New markup multiplier")
	_ = collectionLiquidateCmd.MarkFlagRequired("markup")
}
