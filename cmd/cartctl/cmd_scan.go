package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ridloal/sorav-storefront/internal/invoice"
	"github.com/ridloal/sorav-storefront/internal/session"
)

var scanCmd = &cobra.Command{
	Use:   "scan <page.html>",
	Short: "List the products a storefront page registers",
	Long:  `Reads every .product-card of the page in order and prints the resulting catalog.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	s := session.New(session.Deps{Scheduler: noScheduler{}})
	if _, err := s.ScanCatalog(f); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tIMAGE")
	for _, p := range s.Products() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, invoice.FormatINR(p.UnitPrice), p.ImageRef)
	}
	return w.Flush()
}
