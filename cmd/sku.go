package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var skuCmd = &cobra.Command{
	Use:   "sku <style-code>",
	Short: "Resolve a style code against the sneaker catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Catalog.LookupBySKU(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("no product found for %s", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(skuCmd)
}
