package cmd

import (
	"github.com/spf13/cobra"
)

var transferOpt struct {
	Symbol string `json:"-"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Caller string `json:"caller,omitempty"`
	force  bool
}

// transferCmd moves units between accounts. With --force it takes the
// authority-only path that ignores frozen flags.
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "transfer units between accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/assets/" + transferOpt.Symbol + "/transfer"
		if transferOpt.force {
			path = "/assets/" + transferOpt.Symbol + "/force-transfer"
			transferOpt.Caller = caller()
		}

		if err := postJSON(cmd.Context(), path, &transferOpt, nil); err != nil {
			return err
		}

		cmd.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().StringVar(&transferOpt.Symbol, "symbol", "", "asset symbol")
	transferCmd.Flags().StringVar(&transferOpt.From, "from", "", "sending account")
	transferCmd.Flags().StringVar(&transferOpt.To, "to", "", "receiving account")
	transferCmd.Flags().StringVar(&transferOpt.Amount, "amount", "0", "amount in base units")
	transferCmd.Flags().BoolVar(&transferOpt.force, "force", false, "authority force transfer, bypasses frozen accounts")
}
