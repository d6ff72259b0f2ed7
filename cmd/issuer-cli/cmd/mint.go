package cmd

import (
	"github.com/spf13/cobra"
)

var mintOpt struct {
	Symbol string `json:"-"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Caller string `json:"caller"`
}

// mintCmd creates new units and credits them to an account
var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "mint units to an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		mintOpt.Caller = caller()

		if err := postJSON(cmd.Context(), "/assets/"+mintOpt.Symbol+"/mint", &mintOpt, nil); err != nil {
			return err
		}

		cmd.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mintCmd)

	mintCmd.Flags().StringVar(&mintOpt.Symbol, "symbol", "", "asset symbol")
	mintCmd.Flags().StringVar(&mintOpt.To, "to", "", "receiving account")
	mintCmd.Flags().StringVar(&mintOpt.Amount, "amount", "0", "amount in base units")
}
