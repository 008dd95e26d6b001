package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x0042/uniswap-v3-periphery/internal/format"
)

func runPrice(cmd *cobra.Command, _ []string) error {
	tick, _ := cmd.Flags().GetInt32("tick")
	spacing, _ := cmd.Flags().GetInt32("tick-spacing")
	fee, _ := cmd.Flags().GetUint32("fee")

	price, err := format.TickToDecimalString(tick, spacing)
	if err != nil {
		return err
	}
	fmt.Println(price)

	if cmd.Flags().Changed("fee") {
		fmt.Println(format.FeeToPercentString(fee))
	}

	return nil
}
