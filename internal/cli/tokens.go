package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/rovshanmuradov/swap-widget/internal/swap"
	"github.com/spf13/cobra"
)

var (
	tokensJSON   bool
	filterSymbol string
)

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens", "ls"},
	Short:   "List the configured tokens",
	Long: `List the tokens offered in the token selection dialog.

Examples:
  swap tokens
  swap tokens --symbol us`,
	Args: cobra.NoArgs,
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVarP(&tokensJSON, "json", "j", false, "Output in JSON format")
	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by symbol or identifier")
}

func runTokens(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tokens := cfg.Catalog().Filter(filterSymbol)
	if tokensJSON {
		data, err := json.MarshalIndent(tokens, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tokens: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	displayTokens(cmd, tokens, cfg.DefaultFrom, cfg.DefaultInto)
	return nil
}

func displayTokens(cmd *cobra.Command, tokens []swap.Token, from, into string) {
	out := cmd.OutOrStdout()
	if len(tokens) == 0 {
		fmt.Fprintln(out, "\nNo tokens found matching the criteria.")
		return
	}

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 48))
	fmt.Fprintln(out, color.GreenString("  TOKENS"))
	fmt.Fprintln(out, strings.Repeat("=", 48))
	fmt.Fprintf(out, "  %-8s %-20s %s\n", "SYMBOL", "ID", "DECIMALS")

	for _, t := range tokens {
		marker := ""
		switch t.ID {
		case from:
			marker = color.YellowString(" (from)")
		case into:
			marker = color.YellowString(" (into)")
		}
		fmt.Fprintf(out, "  %s %-20s %d%s\n", color.CyanString("%-8s", t.Symbol), t.ID, t.Decimals, marker)
	}
	fmt.Fprintln(out)
}
