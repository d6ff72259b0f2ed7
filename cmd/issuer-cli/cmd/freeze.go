package cmd

import (
	"github.com/spf13/cobra"
)

var freezeOpt struct {
	Symbol  string `json:"-"`
	Account string `json:"account"`
	Caller  string `json:"caller"`
}

var freezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "freeze an account for ordinary transfers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFrozen(cmd, "freeze")
	},
}

var unfreezeCmd = &cobra.Command{
	Use:   "unfreeze",
	Short: "unfreeze an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFrozen(cmd, "unfreeze")
	},
}

func setFrozen(cmd *cobra.Command, op string) error {
	freezeOpt.Caller = caller()

	if err := postJSON(cmd.Context(), "/assets/"+freezeOpt.Symbol+"/"+op, &freezeOpt, nil); err != nil {
		return err
	}

	cmd.Println("ok")
	return nil
}

func init() {
	rootCmd.AddCommand(freezeCmd)
	rootCmd.AddCommand(unfreezeCmd)

	for _, c := range []*cobra.Command{freezeCmd, unfreezeCmd} {
		c.Flags().StringVar(&freezeOpt.Symbol, "symbol", "", "asset symbol")
		c.Flags().StringVar(&freezeOpt.Account, "account", "", "target account")
	}
}
