package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/narongdej/thaidrill/internal/thai"
)

var numberCmd = &cobra.Command{
	Use:     "number N",
	Short:   "Spell a number in Thai",
	Example: "thaidrill number 2048",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("not a number: %q", args[0])
		}
		if n < 0 || n > thai.MaxNumber {
			return fmt.Errorf("number must be between 0 and %s", humanize.Comma(int64(thai.MaxNumber)))
		}
		fmt.Printf("%s  %s\n", humanize.Comma(int64(n)), thai.Words(n))
		return nil
	},
}
