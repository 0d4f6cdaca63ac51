// Command cartctl inspects and maintains the persisted storefront cart.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
