// Package report renders a computed quote or decline as a fixed-layout,
// monospace-aligned loan estimate.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lenderkit/fha-loan-estimate/internal/quote"
	"github.com/lenderkit/fha-loan-estimate/pkg/constants"
	"github.com/lenderkit/fha-loan-estimate/pkg/format"
)

// labelWidth is the fixed column the value field starts at.
const labelWidth = 44

const header = "fha loan estimate (informational only; not a commitment to lend)"

// Render produces the complete text report for a result. Declines render
// the policy message alone.
func Render(res quote.Result) string {
	if res.Declined() {
		return res.Decline.Message + "\n"
	}
	return renderQuote(res)
}

func renderQuote(res quote.Result) string {
	q := res.Quote
	var b strings.Builder

	line := func(label string, value string) {
		b.WriteString(align(label, value))
		b.WriteByte('\n')
	}
	moneyLine := func(label string, amount decimal.Decimal) {
		line(label, format.Currency(amount))
	}
	blank := func() { b.WriteByte('\n') }

	b.WriteString(header)
	blank()
	blank()

	moneyLine("purchase price:", q.PurchasePrice)
	line("property type:", res.PropertyType.String())
	line("credit score:", fmt.Sprintf("%d", res.CreditScore))
	moneyLine("loan amount (base):", q.BaseLoan)
	moneyLine("loan amount (with financed mip):", q.FinalLoan)
	line("interest rate:", fmt.Sprintf("%s%% (%d-year fixed)", ratePercent(q.NoteRate), q.TermMonths/constants.MonthsPerYear))
	line("apr (estimated):", ratePercent(q.APR)+"%")
	blank()

	moneyLine("principal & interest:", q.MonthlyPI)
	moneyLine("mortgage insurance (monthly):", q.MonthlyMIP)
	moneyLine("estimated escrow (taxes, insurance, hoa):", q.MonthlyEscrow)
	moneyLine("total estimated monthly payment:", q.PITIA)
	blank()

	b.WriteString("closing cost details")
	blank()
	blank()

	for _, box := range q.Boxes() {
		line(fmt.Sprintf("%s. %s", box.Code, box.Title), format.Currency(box.Subtotal))
		for _, item := range box.Items {
			line("  "+item.Label, format.Currency(item.Amount))
		}
		blank()
	}

	moneyLine("total closing costs (a + b + c + e + f + g):", q.TotalClosing)
	if q.LenderCredit.IsPositive() {
		line("lender credit:", "-"+format.Currency(q.LenderCredit))
		moneyLine("net closing costs:", q.NetClosing)
	}
	moneyLine("down payment (>= 3.5% fha):", q.DownPayment)
	moneyLine("total estimated cash to close:", q.CashToClose)
	blank()

	b.WriteString("calculating cash to close")
	blank()
	blank()

	moneyLine("total closing costs", q.TotalClosing)
	if q.LenderCredit.IsPositive() {
		line("lender credit", "-"+format.Currency(q.LenderCredit))
	}
	moneyLine("down payment", q.DownPayment)
	moneyLine("deposit", decimal.Zero)
	moneyLine("funds for borrower", decimal.Zero)
	moneyLine("seller credits", decimal.Zero)
	moneyLine("adjustments and other credits", decimal.Zero)
	blank()

	moneyLine("cash to close", q.CashToClose)

	return b.String()
}

func align(label, value string) string {
	if len(label) >= labelWidth {
		return label + " " + value
	}
	return label + strings.Repeat(" ", labelWidth-len(label)) + value
}

// ratePercent formats a decimal rate as a percentage with three decimals,
// e.g. 0.06125 -> "6.125".
func ratePercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(3)
}
