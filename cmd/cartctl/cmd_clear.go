package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridloal/sorav-storefront/internal/session"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the persisted cart",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	s, cleanup, err := session.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	n := s.Cart().Len()
	if err := s.ClearCart(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %d entries\n", n)
	return nil
}

// noScheduler backs sessions that never check out.
type noScheduler struct{}

func (noScheduler) After(time.Duration, func()) {}
