package cmd

import (
	"github.com/spf13/cobra"
)

var burnOpt struct {
	Symbol string `json:"-"`
	From   string `json:"from"`
	Amount string `json:"amount"`
	Caller string `json:"caller"`
}

// burnCmd destroys units held by an account
var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "burn units from an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		burnOpt.Caller = caller()

		if err := postJSON(cmd.Context(), "/assets/"+burnOpt.Symbol+"/burn", &burnOpt, nil); err != nil {
			return err
		}

		cmd.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(burnCmd)

	burnCmd.Flags().StringVar(&burnOpt.Symbol, "symbol", "", "asset symbol")
	burnCmd.Flags().StringVar(&burnOpt.From, "from", "", "account to burn from")
	burnCmd.Flags().StringVar(&burnOpt.Amount, "amount", "0", "amount in base units")
}
