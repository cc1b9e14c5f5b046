// Package output provides utilities for formatting and displaying computed
// scenario results.
package output

import (
	"fmt"
	"strings"

	"github.com/owengrv/running-the-numbers/internal/engine"
	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(d engine.Derived, variant scenario.Variant, decimals int) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Home ---\n")
	fmt.Printf("Purchase price:   %s\n", format.CurrencyWithDecimals(d.Home.PurchasePrice, decimals))
	fmt.Printf("Loan amount:      %s\n", format.CurrencyWithDecimals(d.Home.LoanAmount, decimals))
	fmt.Printf("P&I:              %s\n", format.CurrencyWithDecimals(d.Home.PrincipalInterest, decimals))
	fmt.Printf("Monthly payment:  %s\n", format.CurrencyWithDecimals(d.Home.TotalMonthly, decimals))
	fmt.Printf("Total interest:   %s\n", format.CurrencyWithDecimals(d.Home.TotalInterest, decimals))
	fmt.Printf("Total cost:       %s\n", format.CurrencyWithDecimals(d.Home.TotalCost, decimals))

	fmt.Printf("\n--- Closing ---\n")
	fmt.Printf("Closing costs:    %s\n", format.CurrencyWithDecimals(d.Closing.Total, decimals))
	fmt.Printf("Cash to close:    %s\n", format.CurrencyWithDecimals(d.Closing.CashToClose, decimals))

	fmt.Printf("\n--- Cash flow ---\n")
	fmt.Printf("Net income:       %s\n", format.CurrencyWithDecimals(d.CashFlow.NetMonthly, decimals))
	fmt.Printf("Total expenses:   %s\n", format.CurrencyWithDecimals(d.CashFlow.TotalExpenses, decimals))
	fmt.Printf("Monthly surplus:  %s\n", format.SignedCurrency(d.CashFlow.Surplus))
	fmt.Printf("Annual surplus:   %s\n", format.SignedCurrency(d.CashFlow.AnnualSurplus))
	fmt.Printf("Expense ratio:    %.1f%% of net income (%s)\n", d.CashFlow.Ratio, d.CashFlow.Band)

	if variant == scenario.VariantBudget {
		fmt.Printf("\n--- Out of pocket ---\n")
		fmt.Printf("Renovation:       %s (incl. %s contingency)\n",
			format.CurrencyWithDecimals(d.OutOfPocket.Renovation.Total, decimals),
			format.CurrencyWithDecimals(d.OutOfPocket.Renovation.Contingency, decimals))
		fmt.Printf("Total:            %s\n", format.CurrencyWithDecimals(d.OutOfPocket.Total, decimals))
		return
	}

	fmt.Printf("\n--- Net worth projection ---\n")
	fmt.Printf("Years | Home Value    | Equity        | Investments   | Debt          | Net Worth     | Change\n")
	fmt.Printf("_____ | _____________ | _____________ | _____________ | _____________ | _____________ | ______\n")
	for _, row := range d.Projection {
		change := "-"
		if row.HasDelta {
			change = format.SignedCurrency(row.Delta)
		}
		_, _ = p.Printf("%5d | $%12.2f | $%12.2f | $%12.2f | $%12.2f | $%12.2f | %s\n",
			row.Years, row.HomeValue, row.Equity, row.Investments, row.Debt, row.NetWorth, change)
	}
}

// CsvFormat outputs the projection in comma-separated value format; the
// budget variant emits the out-of-pocket summary instead.
func CsvFormat(d engine.Derived, variant scenario.Variant) {
	if variant == scenario.VariantBudget {
		fmt.Printf(`"cashToClose","renovationSubtotal","contingency","outOfPocket"` + "\n")
		fmt.Printf(`"%.2f","%.2f","%.2f","%.2f"`+"\n",
			d.OutOfPocket.CashToClose, d.OutOfPocket.Renovation.Subtotal,
			d.OutOfPocket.Renovation.Contingency, d.OutOfPocket.Total)
		return
	}

	fmt.Printf(`"years","homeValue","mortgageBalance","equity","investments","debt","netWorth","change"` + "\n")
	for _, row := range d.Projection {
		change := ""
		if row.HasDelta {
			change = strings.TrimSpace(fmt.Sprintf("%.2f", row.Delta))
		}
		fmt.Printf(`"%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%s"`+"\n",
			row.Years, row.HomeValue, row.MortgageBalance, row.Equity,
			row.Investments, row.Debt, row.NetWorth, change)
	}
}
