package cmd

import (
	"github.com/spf13/cobra"
)

// balanceCmd reads one account's balance entry
var balanceCmd = &cobra.Command{
	Use:   "balance <symbol> <account>",
	Short: "show an account balance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp map[string]any
		if err := getJSON(cmd.Context(), "/assets/"+args[0]+"/accounts/"+args[1], &resp); err != nil {
			return err
		}

		return printJson(cmd, resp)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
