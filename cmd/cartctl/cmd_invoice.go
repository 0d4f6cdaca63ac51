package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridloal/sorav-storefront/internal/session"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Print a preview invoice for the persisted cart",
	Long: `Restores the persisted cart, prices it against the catalog page given by
--catalog (or CATALOG_SEED_HTML) and prints the preview invoice HTML.`,
	Args: cobra.NoArgs,
	RunE: runInvoice,
}

func runInvoice(cmd *cobra.Command, args []string) error {
	s, cleanup, err := session.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	_, html, err := s.Preview()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
	return err
}
