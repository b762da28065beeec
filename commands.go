package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drapequote/services"
	"drapequote/tabular"
)

func newSheetsInitCmd(backend tabular.Backend, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets:init",
		Short: "Write the header rows of the Products, Customers and Quotations sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.InitSheets(commandContext(cmd), backend, logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sheets ready")
			return nil
		},
	}
}

func newQuoteNextCmd(store *services.QuoteStore) *cobra.Command {
	return &cobra.Command{
		Use:   "quote:next",
		Short: "Print the number the next quotation will get",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), store.NextQuotationNumber(commandContext(cmd)))
		},
	}
}

func newCatalogImportCmd(store *services.QuoteStore) *cobra.Command {
	var kind string
	var errorsOut string

	cmd := &cobra.Command{
		Use:   "catalog:import FILE",
		Short: "Import products or customers from a .csv or .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogKind, err := services.ParseCatalogKind(kind)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if info, err := f.Stat(); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "reading %s (%s)\n", args[0], humanize.Bytes(uint64(info.Size())))
			}

			result, err := store.ImportCatalog(commandContext(cmd), f, args[0], catalogKind)
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d rows, %d imported, %d rejected\n",
					result.TotalRows, result.Imported, result.ErrorRows)
				for _, e := range result.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  row %d %s: %s\n", e.Row, e.Field, e.Message)
				}
				if errorsOut != "" && len(result.Errors) > 0 {
					report, rerr := services.GenerateErrorReport(result.Errors)
					if rerr != nil {
						return rerr
					}
					if werr := os.WriteFile(errorsOut, report, 0o644); werr != nil {
						return werr
					}
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(services.CatalogProducts), "catalogue to import into: products or customers")
	cmd.Flags().StringVar(&errorsOut, "errors-out", "", "write rejected rows to this .xlsx file")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
