// Package output provides utilities for formatting and displaying valuation
// results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/craneworks/crane-valuation/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(result *crane.ValuationResult) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Valuation %s ---\n", result.ID)
	_, _ = p.Printf("Fair Market Value:     $%.2f\n", result.FairMarketValue)
	_, _ = p.Printf("Retail Value:          $%.2f\n", result.RetailValue)
	_, _ = p.Printf("Wholesale Value:       $%.2f\n", result.WholesaleValue)
	_, _ = p.Printf("Orderly Liquidation:   $%.2f\n", result.OrderlyLiquidationValue)
	_, _ = p.Printf("Forced Liquidation:    $%.2f\n", result.ForcedLiquidationValue)
	_, _ = p.Printf("Insurance Replacement: $%.2f\n", result.InsuranceReplacementValue)
	fmt.Printf("\n")
	fmt.Printf("Deal Score:       %d/100\n", result.DealScore)
	fmt.Printf("Wear Score:       %.1f/100\n", result.WearScore)
	fmt.Printf("Confidence:       %.2f\n", result.ConfidenceScore)
	fmt.Printf("Market Position:  %s\n", result.MarketPosition)

	if len(result.ComparableSales) > 0 {
		fmt.Printf("\nComparable Sales\n")
		fmt.Printf("Similarity | Price         | Listing\n")
		fmt.Printf("__________ | _____________ | _______\n")
		// Only the price goes through the grouping printer; %d years must
		// not pick up thousands separators.
		for _, match := range result.ComparableSales {
			fmt.Printf("%.2f       | $%s | %s %s (%d, %s)\n",
				match.Similarity, p.Sprintf("%.2f", match.Record.Price),
				match.Record.Manufacturer, match.Record.ModelTitle,
				match.Record.Year, format.Tons(match.Record.CapacityTons))
		}
	}

	if len(result.FinancingScenarios) > 0 {
		fmt.Printf("\nFinancing Scenarios\n")
		for _, scenario := range result.FinancingScenarios {
			line := fmt.Sprintf("%-18s down %s", scenario.Label, format.Currency(scenario.DownPayment))
			if scenario.MonthlyPayment > 0 {
				line += fmt.Sprintf(", %s/month over %d months at %.2f%%",
					format.Currency(scenario.MonthlyPayment), scenario.TermMonths, scenario.AnnualRatePercent)
			}
			if scenario.AnnualRentalIncome > 0 {
				line += fmt.Sprintf(", rental income %s/year (payback %.1fy, ROI %.1f%%)",
					format.Currency(scenario.AnnualRentalIncome), scenario.PaybackYears, scenario.ROIPercent)
			}
			fmt.Println(line)
		}
	}

	if len(result.RiskFactors) > 0 {
		fmt.Printf("\nRisk Factors\n")
		for _, risk := range result.RiskFactors {
			fmt.Printf("- %s\n", risk)
		}
	}
	if len(result.Recommendations) > 0 {
		fmt.Printf("\nRecommendations\n")
		for _, rec := range result.Recommendations {
			fmt.Printf("- %s\n", rec)
		}
	}
}

// CsvFormat outputs the valuation in comma-separated value format, one value
// field per row so spreadsheet imports stay simple.
func CsvFormat(result *crane.ValuationResult) {
	fmt.Printf("\"field\",\"value\"\n")
	fmt.Printf("\"id\",\"%s\"\n", result.ID)
	fmt.Printf("\"fairMarketValue\",\"%.2f\"\n", result.FairMarketValue)
	fmt.Printf("\"wholesaleValue\",\"%.2f\"\n", result.WholesaleValue)
	fmt.Printf("\"retailValue\",\"%.2f\"\n", result.RetailValue)
	fmt.Printf("\"orderlyLiquidationValue\",\"%.2f\"\n", result.OrderlyLiquidationValue)
	fmt.Printf("\"forcedLiquidationValue\",\"%.2f\"\n", result.ForcedLiquidationValue)
	fmt.Printf("\"insuranceReplacementValue\",\"%.2f\"\n", result.InsuranceReplacementValue)
	fmt.Printf("\"dealScore\",\"%d\"\n", result.DealScore)
	fmt.Printf("\"wearScore\",\"%.1f\"\n", result.WearScore)
	fmt.Printf("\"confidenceScore\",\"%.2f\"\n", result.ConfidenceScore)
	fmt.Printf("\"marketPosition\",\"%s\"\n", result.MarketPosition)
	fmt.Printf("\"riskFactors\",\"%s\"\n", strings.Join(result.RiskFactors, "; "))
	fmt.Printf("\"recommendations\",\"%s\"\n", strings.Join(result.Recommendations, "; "))
	for _, match := range result.ComparableSales {
		fmt.Printf("\"comparable\",\"%s %s (%d) %.2f @ %.2f\"\n",
			match.Record.Manufacturer, match.Record.ModelTitle, match.Record.Year,
			match.Similarity, match.Record.Price)
	}
}
