package controller

import (
	"fmt"
	"math"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/scenario"
)

// formatAnswer renders a numeric answer for display. Currency values below
// one major unit use the minor suffix ("37p"); one unit and above use the
// symbol with two decimals ("£1.20"). Non-currency values render plainly.
func formatAnswer(value float64, currency bool, cultural scenario.CulturalContext) string {
	if !currency {
		return distractor.FormatValue(value)
	}
	return formatCurrency(value, cultural)
}

func formatCurrency(value float64, cultural scenario.CulturalContext) string {
	symbol := cultural.CurrencySymbol
	if symbol == "" {
		symbol = "£"
	}
	suffix := cultural.MinorUnitSuffix
	if suffix == "" {
		suffix = "p"
	}

	if value < 1 {
		pence := int(math.Round(value * 100))
		return fmt.Sprintf("%d%s", pence, suffix)
	}
	return fmt.Sprintf("%s%.2f", symbol, value)
}

// isCurrencyScenario reports whether values in this scenario read as money.
func isCurrencyScenario(sc *scenario.Context) bool {
	if sc == nil {
		return false
	}
	switch sc.Theme {
	case scenario.ThemeShopping, scenario.ThemePocketMoney:
		return true
	}
	return false
}
