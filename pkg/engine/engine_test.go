package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lenderkit/fha-loan-estimate/pkg/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultPolicy() Policy {
	return Policy{
		EnforceMinimumDownPayment: true,
		ApplyPrepaidFloors:        true,
		AllowLenderCredit:         true,
	}
}

func referenceInput() Input {
	return Input{
		PurchasePrice:    dec("400000"),
		DownPayment:      dec("14000"),
		CreditScore:      700,
		NoteRate:         pricing.DefaultNoteRate,
		TermMonths:       360,
		MonthlyTaxes:     dec("300"),
		MonthlyInsurance: dec("100"),
		MonthlyHOA:       decimal.Zero,
	}
}

func TestDownPayment(t *testing.T) {
	tests := []struct {
		name      string
		price     string
		value     string
		isPercent bool
		enforce   bool
		expected  string
	}{
		{"Percent of price", "400000", "3.5", true, true, "14000.00"},
		{"Explicit amount", "400000", "20000", false, true, "20000.00"},
		{"Clamped to FHA minimum", "400000", "5000", false, true, "14000.00"},
		{"Zero percent clamped", "200000", "0", true, true, "7000.00"},
		{"No clamp when policy off", "400000", "5000", false, false, "5000.00"},
		{"Zero stays zero when policy off", "400000", "0", false, false, "0.00"},
		{"Percent rounded to cents", "333333", "3.5", true, false, "11666.66"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pol := Policy{EnforceMinimumDownPayment: tt.enforce}
			result := DownPayment(dec(tt.price), dec(tt.value), tt.isPercent, pol)
			if result.StringFixed(2) != tt.expected {
				t.Errorf("DownPayment() = %s, expected %s", result.StringFixed(2), tt.expected)
			}
		})
	}
}

func TestBaseLoan(t *testing.T) {
	if got := BaseLoan(dec("400000"), dec("14000")); !got.Equal(dec("386000")) {
		t.Errorf("BaseLoan() = %s, expected 386000", got)
	}
	// Down payment above price cannot produce a negative loan.
	if got := BaseLoan(dec("100000"), dec("150000")); !got.IsZero() {
		t.Errorf("BaseLoan() = %s, expected 0", got)
	}
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name          string
		principal     string
		annualRate    string
		termMonths    int
		expectedRange []string // [min, max]
	}{
		{
			name:          "Reference FHA loan",
			principal:     "392755",
			annualRate:    "0.06125",
			termMonths:    360,
			expectedRange: []string{"2386.00", "2386.90"},
		},
		{
			name:          "Round principal",
			principal:     "300000",
			annualRate:    "0.06",
			termMonths:    360,
			expectedRange: []string{"1798", "1800"}, // Around $1,798.65
		},
		{
			name:          "Zero interest divides evenly",
			principal:     "360000",
			annualRate:    "0",
			termMonths:    360,
			expectedRange: []string{"1000", "1000"},
		},
		{
			name:          "Short term",
			principal:     "150000",
			annualRate:    "0.05",
			termMonths:    180,
			expectedRange: []string{"1186", "1187"}, // Around $1,186.19
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthlyPayment(dec(tt.principal), dec(tt.annualRate), tt.termMonths)
			if result.LessThan(dec(tt.expectedRange[0])) || result.GreaterThan(dec(tt.expectedRange[1])) {
				t.Errorf("MonthlyPayment() = %s, expected range [%s, %s]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestComputeReferenceQuote(t *testing.T) {
	q := Compute(referenceInput(), defaultPolicy())

	exact := []struct {
		name     string
		got      decimal.Decimal
		expected string
	}{
		{"base loan", q.BaseLoan, "386000.00"},
		{"upfront mip", q.UpfrontMIP, "6755.00"},
		{"final loan", q.FinalLoan, "392755.00"},
		{"monthly mip", q.MonthlyMIP, "180.01"},
		{"monthly escrow", q.MonthlyEscrow, "400.00"},
		{"interim interest", q.InterimInterest, "988.61"},
		{"box a subtotal", q.BoxA.Subtotal, "0.00"},
		{"box b subtotal", q.BoxB.Subtotal, "7535.00"},
		{"box c subtotal", q.BoxC.Subtotal, "2960.15"},
		{"box e subtotal", q.BoxE.Subtotal, "2459.15"},
		{"box f subtotal", q.BoxF.Subtotal, "2788.61"},
		{"box g subtotal", q.BoxG.Subtotal, "1200.00"},
		{"total closing", q.TotalClosing, "16942.91"},
		{"cash to close", q.CashToClose, "30942.91"},
	}
	for _, tt := range exact {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.StringFixed(2) != tt.expected {
				t.Errorf("%s = %s, expected %s", tt.name, tt.got.StringFixed(2), tt.expected)
			}
		})
	}

	if q.MonthlyPI.LessThan(dec("2386")) || q.MonthlyPI.GreaterThan(dec("2387")) {
		t.Errorf("monthly P&I = %s, expected range [2386, 2387]", q.MonthlyPI)
	}

	expectedPITIA := q.MonthlyPI.Add(q.MonthlyMIP).Add(q.MonthlyEscrow)
	if !q.PITIA.Equal(expectedPITIA) {
		t.Errorf("PITIA = %s, expected P&I + MIP + escrow = %s", q.PITIA, expectedPITIA)
	}
}

func TestComputeInvariants(t *testing.T) {
	inputs := []Input{
		referenceInput(),
		{
			PurchasePrice:    dec("250000"),
			DownPayment:      dec("8750"),
			CreditScore:      640,
			NoteRate:         pricing.DefaultNoteRate,
			TermMonths:       360,
			MonthlyTaxes:     decimal.Zero,
			MonthlyInsurance: decimal.Zero,
			MonthlyHOA:       dec("150"),
		},
		{
			PurchasePrice:       dec("750000"),
			DownPayment:         dec("200000"),
			CreditScore:         800,
			NoteRate:            pricing.DefaultNoteRate,
			TermMonths:          360,
			MonthlyTaxes:        dec("650.50"),
			MonthlyInsurance:    dec("210.25"),
			MonthlyHOA:          dec("95"),
			LenderCreditPercent: dec("2"),
		},
	}

	for _, in := range inputs {
		q := Compute(in, defaultPolicy())

		if !q.FinalLoan.Equal(q.BaseLoan.Add(q.UpfrontMIP)) {
			t.Errorf("final loan %s != base loan %s + ufmip %s", q.FinalLoan, q.BaseLoan, q.UpfrontMIP)
		}
		expectedUfmip := q.BaseLoan.Mul(pricing.UpfrontMIPRate).Round(2)
		if !q.UpfrontMIP.Equal(expectedUfmip) {
			t.Errorf("ufmip = %s, expected %s", q.UpfrontMIP, expectedUfmip)
		}
		if q.CashToClose.LessThan(q.DownPayment) {
			t.Errorf("cash to close %s below down payment %s", q.CashToClose, q.DownPayment)
		}
		total := decimal.Zero
		for _, box := range q.Boxes() {
			total = total.Add(box.Subtotal)
		}
		if !q.TotalClosing.Equal(total) {
			t.Errorf("total closing %s != sum of box subtotals %s", q.TotalClosing, total)
		}
	}
}

func TestComputeTransferTaxEqualsLendersTitle(t *testing.T) {
	q := Compute(referenceInput(), defaultPolicy())

	var lendersTitle, transferTax decimal.Decimal
	for _, item := range q.BoxC.Items {
		if item.Label == "lender's title insurance" {
			lendersTitle = item.Amount
		}
	}
	for _, item := range q.BoxE.Items {
		if item.Label == "transfer taxes" {
			transferTax = item.Amount
		}
	}

	if lendersTitle.IsZero() {
		t.Fatal("lender's title insurance line not found")
	}
	if !transferTax.Equal(lendersTitle) {
		t.Errorf("transfer tax %s != lender's title insurance %s", transferTax, lendersTitle)
	}
}

func TestComputePrepaidAndEscrowFloors(t *testing.T) {
	in := referenceInput()
	in.MonthlyTaxes = decimal.Zero
	in.MonthlyInsurance = decimal.Zero

	q := Compute(in, defaultPolicy())

	// 12 months of zero insurance floors at $1,800; empty escrows floor at
	// $450 insurance / $1,125 taxes.
	if q.BoxF.Items[0].Amount.StringFixed(2) != "1800.00" {
		t.Errorf("prepaid insurance = %s, expected 1800.00", q.BoxF.Items[0].Amount)
	}
	if q.BoxG.Items[0].Amount.StringFixed(2) != "450.00" {
		t.Errorf("escrow insurance = %s, expected 450.00", q.BoxG.Items[0].Amount)
	}
	if q.BoxG.Items[1].Amount.StringFixed(2) != "1125.00" {
		t.Errorf("escrow taxes = %s, expected 1125.00", q.BoxG.Items[1].Amount)
	}

	// Floors off: zeros flow through.
	pol := defaultPolicy()
	pol.ApplyPrepaidFloors = false
	q = Compute(in, pol)
	if !q.BoxF.Items[0].Amount.IsZero() || !q.BoxG.Items[0].Amount.IsZero() || !q.BoxG.Items[1].Amount.IsZero() {
		t.Errorf("expected zero prepaids and escrows with floors disabled, got %s / %s / %s",
			q.BoxF.Items[0].Amount, q.BoxG.Items[0].Amount, q.BoxG.Items[1].Amount)
	}

	// Nonzero monthly figures beat the escrow floors but not the prepaid max.
	in.MonthlyInsurance = dec("100")
	in.MonthlyTaxes = dec("300")
	q = Compute(in, defaultPolicy())
	if q.BoxF.Items[0].Amount.StringFixed(2) != "1800.00" {
		t.Errorf("prepaid insurance = %s, expected floor 1800.00", q.BoxF.Items[0].Amount)
	}
	if q.BoxG.Items[0].Amount.StringFixed(2) != "300.00" {
		t.Errorf("escrow insurance = %s, expected 300.00", q.BoxG.Items[0].Amount)
	}
	if q.BoxG.Items[1].Amount.StringFixed(2) != "900.00" {
		t.Errorf("escrow taxes = %s, expected 900.00", q.BoxG.Items[1].Amount)
	}
}

func TestComputeLenderCredit(t *testing.T) {
	in := referenceInput()
	in.LenderCreditPercent = dec("2")

	q := Compute(in, defaultPolicy())

	expectedCredit := dec("7855.10") // 392,755 x 2%
	if !q.LenderCredit.Equal(expectedCredit) {
		t.Errorf("lender credit = %s, expected %s", q.LenderCredit, expectedCredit)
	}
	if !q.NetClosing.Equal(q.TotalClosing.Sub(expectedCredit)) {
		t.Errorf("net closing = %s, expected total - credit", q.NetClosing)
	}
	if !q.CashToClose.Equal(q.DownPayment.Add(q.NetClosing)) {
		t.Errorf("cash to close = %s, expected down payment + net closing", q.CashToClose)
	}
}

func TestComputeLenderCreditCappedAtTotal(t *testing.T) {
	in := referenceInput()
	in.LenderCreditPercent = dec("50")

	q := Compute(in, defaultPolicy())

	if !q.LenderCredit.Equal(q.TotalClosing) {
		t.Errorf("lender credit = %s, expected cap at total closing %s", q.LenderCredit, q.TotalClosing)
	}
	if !q.NetClosing.IsZero() {
		t.Errorf("net closing = %s, expected 0", q.NetClosing)
	}
	if !q.CashToClose.Equal(q.DownPayment) {
		t.Errorf("cash to close = %s, expected down payment %s", q.CashToClose, q.DownPayment)
	}
}

func TestComputeLenderCreditDisabled(t *testing.T) {
	in := referenceInput()
	in.LenderCreditPercent = dec("2")
	pol := defaultPolicy()
	pol.AllowLenderCredit = false

	q := Compute(in, pol)

	if !q.LenderCredit.IsZero() {
		t.Errorf("lender credit = %s, expected 0 with policy disabled", q.LenderCredit)
	}
	if !q.NetClosing.Equal(q.TotalClosing) {
		t.Errorf("net closing = %s, expected total closing %s", q.NetClosing, q.TotalClosing)
	}
}

func TestComputeAPRSpread(t *testing.T) {
	q := Compute(referenceInput(), defaultPolicy())
	if !q.APR.Equal(pricing.DefaultNoteRate.Add(pricing.APRSpread)) {
		t.Errorf("APR = %s, expected note rate + spread", q.APR)
	}
}
