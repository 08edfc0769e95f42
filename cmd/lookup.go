package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/soletrack/soletrack/internal/pricing"
)

var lookupReq pricing.LookupRequest

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up market pricing for a sneaker",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		resp, err := env.Pricing.Lookup(cmd.Context(), lookupReq)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupReq.Brand, "brand", "", "sneaker brand (required)")
	lookupCmd.Flags().StringVar(&lookupReq.Model, "model", "", "sneaker model (required)")
	lookupCmd.Flags().StringVar(&lookupReq.Colorway, "colorway", "", "colorway")
	lookupCmd.Flags().StringVar(&lookupReq.SKU, "sku", "", "style code")
	lookupCmd.Flags().StringVar(&lookupReq.Size, "size", "", "US size")
	lookupCmd.MarkFlagRequired("brand")
	lookupCmd.MarkFlagRequired("model")
	rootCmd.AddCommand(lookupCmd)
}
