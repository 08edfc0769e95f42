package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/soletrack/soletrack/internal/inventory"
	"github.com/soletrack/soletrack/internal/pricing"
)

var refreshApply bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-price unsold inventory against live market data",
	Long:  "Fetches a fresh market estimate for every sneaker without a recorded sale. Dry-run by default; --apply writes the estimate to each sneaker's listing price.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		sneakers, err := env.Store.ListSneakers(ctx, inventory.SneakerFilter{})
		if err != nil {
			return err
		}
		sales, err := env.Store.ListSales(ctx, inventory.SaleFilter{})
		if err != nil {
			return err
		}

		sold := make(map[string]bool, len(sales))
		for _, sale := range sales {
			sold[sale.SneakerID] = true
		}

		// Lookups run concurrently but each one stays sequential inside, and
		// a shared limiter keeps the aggregate request rate under the
		// upstream quota.
		limiter := rate.NewLimiter(rate.Limit(cfg.Refresh.RequestsPerSec), 1)

		var mu sync.Mutex
		refreshed := 0

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Refresh.MaxConcurrent)

		for i := range sneakers {
			sn := sneakers[i]
			if sold[sn.ID] {
				continue
			}

			g.Go(func() error {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}

				resp, err := env.Pricing.Lookup(gctx, pricing.LookupRequest{
					Brand:    sn.Brand,
					Model:    sn.Model,
					Colorway: sn.Colorway,
					SKU:      sn.SKU,
					Size:     sn.Size,
				})
				if err != nil {
					zap.L().Warn("refresh: lookup failed",
						zap.String("id", sn.ID),
						zap.String("brand", sn.Brand),
						zap.String("model", sn.Model),
						zap.Error(err),
					)
					return nil
				}
				if resp.IsDemo || resp.Summary.CurrentMarketPrice == nil {
					zap.L().Info("refresh: no live market price",
						zap.String("id", sn.ID),
						zap.String("brand", sn.Brand),
						zap.String("model", sn.Model),
					)
					return nil
				}

				market := *resp.Summary.CurrentMarketPrice
				fmt.Printf("%s %s (%s): listed %.2f, market %.2f\n",
					sn.Brand, sn.Model, sn.Size, sn.ListingPrice, market)

				if !refreshApply {
					return nil
				}

				sn.ListingPrice = market
				if err := env.Store.UpdateSneaker(gctx, &sn); err != nil {
					return err
				}

				mu.Lock()
				refreshed++
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		if refreshApply {
			fmt.Printf("updated %d listing prices\n", refreshed)
		} else {
			fmt.Println("dry run, pass --apply to write listing prices")
		}
		return nil
	},
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshApply, "apply", false, "write fetched market prices to listing prices")
	rootCmd.AddCommand(refreshCmd)
}
