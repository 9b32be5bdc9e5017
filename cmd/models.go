package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/radworks/radchat/pkg/provider"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available chat models",
	Run: func(cmd *cobra.Command, args []string) {
		for _, model := range provider.ListModels() {
			marker := " "
			if model.ID == provider.DefaultModel {
				marker = "*"
			}
			fmt.Printf("%s %-40s %s (%s)\n", marker, model.ID, model.Name, model.Provider)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
