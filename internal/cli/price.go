package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/rovshanmuradov/swap-widget/internal/logger"
	"github.com/rovshanmuradov/swap-widget/internal/price"
	"github.com/rovshanmuradov/swap-widget/internal/swap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var priceJSON bool

var priceCmd = &cobra.Command{
	Use:   "price <id>...",
	Short: "Look up unit prices",
	Long: `Look up the unit price of one or more token identifiers in the
configured reference currency.

Examples:
  swap price ethereum
  swap price bitcoin tether --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)
	priceCmd.Flags().BoolVarP(&priceJSON, "json", "j", false, "Output in JSON format")
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	client := price.NewClient(cfg.PriceOptions(), log)
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !priceJSON {
		s.Suffix = " Fetching prices..."
		s.Start()
	}
	prices, lookupErr := client.Prices(ctx, args...)
	if !priceJSON {
		s.Stop()
	}

	if lookupErr != nil {
		log.Debug("Some lookups failed", zap.Error(lookupErr))
	}
	if len(prices) == 0 && lookupErr != nil {
		return lookupErr
	}

	if priceJSON {
		data, err := json.MarshalIndent(prices, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode prices: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	formatter := swap.NewFormatter(cfg.CurrencySymbol)
	formatter.Fraction = 6
	displayPrices(cmd, args, prices, formatter, client.Currency())
	return nil
}

func displayPrices(cmd *cobra.Command, ids []string, prices map[string]float64, f swap.Formatter, currency string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n"+strings.Repeat("=", 48))
	fmt.Fprintln(out, color.GreenString("  PRICES (%s)", strings.ToUpper(currency)))
	fmt.Fprintln(out, strings.Repeat("=", 48))

	for _, id := range ids {
		p, ok := prices[id]
		if !ok {
			fmt.Fprintf(out, "  %-20s %s\n", id, color.RedString("unavailable"))
			continue
		}
		fmt.Fprintf(out, "  %-20s %s\n", id, color.CyanString(f.Format(1, p)))
	}
	fmt.Fprintln(out)
}
