package cmd

import (
	"github.com/spf13/cobra"
)

var initOpt struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Decimals   uint8  `json:"decimals"`
	IconURL    string `json:"icon_url,omitempty"`
	ProjectURL string `json:"project_url,omitempty"`
	Caller     string `json:"caller"`
}

// initCmd initializes a new asset under the authority
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "initialize a new asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		initOpt.Caller = caller()

		var resp struct {
			Handle string `json:"handle"`
		}

		if err := postJSON(cmd.Context(), "/assets", &initOpt, &resp); err != nil {
			return err
		}

		return printJson(cmd, resp)
	},
}

// showCmd reads one asset by symbol
var showCmd = &cobra.Command{
	Use:   "show <symbol>",
	Short: "show an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp map[string]any
		if err := getJSON(cmd.Context(), "/assets/"+args[0], &resp); err != nil {
			return err
		}

		return printJson(cmd, resp)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list all assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp map[string]any
		if err := getJSON(cmd.Context(), "/assets", &resp); err != nil {
			return err
		}

		return printJson(cmd, resp)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)

	initCmd.Flags().StringVar(&initOpt.Symbol, "symbol", "", "asset symbol")
	initCmd.Flags().StringVar(&initOpt.Name, "name", "", "display name")
	initCmd.Flags().Uint8Var(&initOpt.Decimals, "decimals", 8, "display decimals")
	initCmd.Flags().StringVar(&initOpt.IconURL, "icon", "", "icon url (optional)")
	initCmd.Flags().StringVar(&initOpt.ProjectURL, "project", "", "project url (optional)")
}
