// Package engine derives the full FHA loan estimate from normalized input:
// down payment, base and final loan, mortgage insurance, the amortized
// payment, interim interest, and the itemized closing-cost boxes. Input is
// assumed to have already passed eligibility.
package engine

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/lenderkit/fha-loan-estimate/pkg/constants"
	"github.com/lenderkit/fha-loan-estimate/pkg/format"
	"github.com/lenderkit/fha-loan-estimate/pkg/money"
	"github.com/lenderkit/fha-loan-estimate/pkg/pricing"
)

// Policy holds the named toggles that varied across estimate revisions.
type Policy struct {
	// EnforceMinimumDownPayment clamps the down payment at 3.5% of price.
	EnforceMinimumDownPayment bool
	// ApplyPrepaidFloors applies the $1,800 prepaid-insurance minimum and
	// the $450/$1,125 initial-escrow minimums when monthly figures are zero.
	ApplyPrepaidFloors bool
	// AllowLenderCredit enables the optional lender credit against closing
	// costs.
	AllowLenderCredit bool
}

// Input is the normalized, already-eligible quote input. All amounts are
// exact non-negative decimals rounded to cents.
type Input struct {
	PurchasePrice       decimal.Decimal
	DownPayment         decimal.Decimal
	CreditScore         int
	NoteRate            decimal.Decimal
	TermMonths          int
	MonthlyTaxes        decimal.Decimal
	MonthlyInsurance    decimal.Decimal
	MonthlyHOA          decimal.Decimal
	LenderCreditPercent decimal.Decimal
}

// LineItem is a single labeled figure in a cost box.
type LineItem struct {
	Label  string
	Amount decimal.Decimal
}

// CostBox is one of the standardized closing-cost disclosure categories.
type CostBox struct {
	Code     string
	Title    string
	Items    []LineItem
	Subtotal decimal.Decimal
}

// Quote holds every computed figure of the loan estimate.
type Quote struct {
	PurchasePrice decimal.Decimal
	DownPayment   decimal.Decimal
	BaseLoan      decimal.Decimal
	UpfrontMIP    decimal.Decimal
	FinalLoan     decimal.Decimal

	NoteRate   decimal.Decimal
	APR        decimal.Decimal
	TermMonths int

	MonthlyPI       decimal.Decimal
	MonthlyMIP      decimal.Decimal
	MonthlyEscrow   decimal.Decimal
	PITIA           decimal.Decimal
	DailyInterest   decimal.Decimal
	InterimInterest decimal.Decimal

	BoxA CostBox
	BoxB CostBox
	BoxC CostBox
	BoxE CostBox
	BoxF CostBox
	BoxG CostBox

	TotalClosing decimal.Decimal
	LenderCredit decimal.Decimal
	NetClosing   decimal.Decimal
	CashToClose  decimal.Decimal
}

// DownPayment resolves the down payment from the raw value and percent
// flag, then optionally clamps it at the FHA 3.5% minimum. The result is
// rounded to cents.
func DownPayment(price, value decimal.Decimal, isPercent bool, pol Policy) decimal.Decimal {
	var dp decimal.Decimal
	if isPercent {
		dp = money.Round2(price.Mul(value).Div(decimal.NewFromInt(100)))
	} else {
		dp = money.Round2(value)
	}
	if pol.EnforceMinimumDownPayment {
		dp = money.Max(dp, money.Round2(price.Mul(pricing.MinimumDownPaymentRate)))
	}
	return money.NonNegative(dp)
}

// BaseLoan is the purchase price less the down payment, clamped at zero.
func BaseLoan(price, downPayment decimal.Decimal) decimal.Decimal {
	return money.NonNegative(price.Sub(downPayment))
}

// MonthlyPayment computes the standard fixed-rate amortization payment. The
// power term is evaluated in floating point (the factor is irrational for
// any nonzero rate); the result is rounded to cents exactly once.
func MonthlyPayment(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		termMonths = constants.DefaultTermMonths
	}

	monthlyRate := annualRate.Div(decimal.NewFromInt(constants.MonthsPerYear))
	if monthlyRate.IsZero() {
		return money.Round2(principal.Div(decimal.NewFromInt(int64(termMonths))))
	}

	r := monthlyRate.InexactFloat64()
	p := principal.InexactFloat64()
	power := math.Pow(1.0+r, float64(termMonths))
	payment := p * r * power / (power - 1.0)
	return money.Round2(decimal.NewFromFloat(payment))
}

// Compute derives the complete quote. Every report line item is rounded to
// cents exactly once at the point it is finalized; box subtotals and the
// closing-cost total are sums of already-rounded items.
func Compute(in Input, pol Policy) Quote {
	twelve := decimal.NewFromInt(constants.MonthsPerYear)
	hundred := decimal.NewFromInt(100)

	baseLoan := BaseLoan(in.PurchasePrice, in.DownPayment)
	ufmip := money.Round2(baseLoan.Mul(pricing.UpfrontMIPRate))
	finalLoan := baseLoan.Add(ufmip)

	termMonths := in.TermMonths
	if termMonths <= 0 {
		termMonths = constants.DefaultTermMonths
	}

	pi := MonthlyPayment(finalLoan, in.NoteRate, termMonths)
	mip := money.Round2(finalLoan.Mul(pricing.AnnualMIPRate).Div(twelve))
	escrow := in.MonthlyTaxes.Add(in.MonthlyInsurance).Add(in.MonthlyHOA)
	pitia := pi.Add(mip).Add(escrow)

	// Full-precision daily rate; only the 15-day figure is rounded.
	daily := finalLoan.Mul(in.NoteRate).Div(decimal.NewFromInt(constants.DaysPerYear))
	interim := money.Round2(daily.Mul(decimal.NewFromInt(constants.InterimInterestDays)))

	lendersTitle := money.Round2(finalLoan.Mul(pricing.LendersTitleRate))
	// Transfer tax is defined equal to lender's title insurance. Documented
	// policy simplification, not a coincidence.
	transferTax := lendersTitle

	prepaidInsurance := money.Round2(in.MonthlyInsurance.Mul(decimal.NewFromInt(constants.PrepaidInsuranceMonths)))
	escrowInsurance := money.Round2(in.MonthlyInsurance.Mul(decimal.NewFromInt(constants.EscrowMonths)))
	escrowTaxes := money.Round2(in.MonthlyTaxes.Mul(decimal.NewFromInt(constants.EscrowMonths)))
	if pol.ApplyPrepaidFloors {
		prepaidInsurance = money.Max(prepaidInsurance, pricing.PrepaidInsuranceFloor)
		if escrowInsurance.IsZero() {
			escrowInsurance = pricing.EscrowInsuranceFloor
		}
		if escrowTaxes.IsZero() {
			escrowTaxes = pricing.EscrowTaxFloor
		}
	}

	boxA := newBox("a", "origination charges",
		LineItem{Label: "origination fee", Amount: decimal.Zero},
	)
	boxB := newBox("b", "services you cannot shop for",
		LineItem{Label: "appraisal fee", Amount: pricing.AppraisalFee},
		LineItem{Label: "credit report", Amount: pricing.CreditReportFee},
		LineItem{Label: "flood certification", Amount: pricing.FloodCertFee},
		LineItem{Label: "fha upfront mip (financed)", Amount: ufmip},
	)
	boxC := newBox("c", "services you can shop for",
		LineItem{Label: "title search / examination", Amount: pricing.TitleSearchFee},
		LineItem{Label: "survey", Amount: pricing.SurveyFee},
		LineItem{Label: "lender's title insurance", Amount: lendersTitle},
	)
	boxE := newBox("e", "taxes and other government fees",
		LineItem{Label: "recording fees", Amount: pricing.RecordingFee},
		LineItem{Label: "transfer taxes", Amount: transferTax},
	)
	boxF := newBox("f", "prepaids",
		LineItem{Label: "homeowner's insurance (12 months)", Amount: prepaidInsurance},
		LineItem{
			Label:  fmt.Sprintf("prepaid interest (15 days @ %s/day)", format.Currency(daily.Round(2))),
			Amount: interim,
		},
	)
	boxG := newBox("g", "initial escrow payment at closing",
		LineItem{Label: "homeowner's insurance (3 months)", Amount: escrowInsurance},
		LineItem{Label: "property taxes (3 months)", Amount: escrowTaxes},
	)

	totalClosing := boxA.Subtotal.
		Add(boxB.Subtotal).
		Add(boxC.Subtotal).
		Add(boxE.Subtotal).
		Add(boxF.Subtotal).
		Add(boxG.Subtotal)

	credit := decimal.Zero
	if pol.AllowLenderCredit && in.LenderCreditPercent.IsPositive() {
		credit = money.Round2(finalLoan.Mul(in.LenderCreditPercent).Div(hundred))
		// The credit cannot push net closing costs negative.
		if credit.GreaterThan(totalClosing) {
			credit = totalClosing
		}
	}
	netClosing := totalClosing.Sub(credit)

	// Never report cash to close below the down payment itself.
	cashToClose := money.Max(in.DownPayment.Add(netClosing), in.DownPayment)

	return Quote{
		PurchasePrice:   in.PurchasePrice,
		DownPayment:     in.DownPayment,
		BaseLoan:        baseLoan,
		UpfrontMIP:      ufmip,
		FinalLoan:       finalLoan,
		NoteRate:        in.NoteRate,
		APR:             in.NoteRate.Add(pricing.APRSpread),
		TermMonths:      termMonths,
		MonthlyPI:       pi,
		MonthlyMIP:      mip,
		MonthlyEscrow:   escrow,
		PITIA:           pitia,
		DailyInterest:   daily,
		InterimInterest: interim,
		BoxA:            boxA,
		BoxB:            boxB,
		BoxC:            boxC,
		BoxE:            boxE,
		BoxF:            boxF,
		BoxG:            boxG,
		TotalClosing:    totalClosing,
		LenderCredit:    credit,
		NetClosing:      netClosing,
		CashToClose:     cashToClose,
	}
}

// Boxes returns the cost boxes in disclosure order.
func (q Quote) Boxes() []CostBox {
	return []CostBox{q.BoxA, q.BoxB, q.BoxC, q.BoxE, q.BoxF, q.BoxG}
}

func newBox(code, title string, items ...LineItem) CostBox {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	return CostBox{Code: code, Title: title, Items: items, Subtotal: subtotal}
}
