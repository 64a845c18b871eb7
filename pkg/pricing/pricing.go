// Package pricing holds the fixed FHA policy values: rates, the flat fee
// schedule, prepaid/escrow floors, and the FICO-keyed rate table. These are
// process-wide policy constants, not per-request configuration.
package pricing

import "github.com/shopspring/decimal"

// Rates and floors, expressed as exact decimals.
var (
	// DefaultNoteRate is the placeholder note rate (6.125%) applied to every
	// FICO bucket in the current single-bucket rate table.
	DefaultNoteRate = decimal.RequireFromString("0.06125")

	// UpfrontMIPRate is the FHA upfront mortgage insurance premium rate,
	// financed into the loan.
	UpfrontMIPRate = decimal.RequireFromString("0.0175")

	// AnnualMIPRate is the annual mortgage insurance premium rate, paid monthly.
	AnnualMIPRate = decimal.RequireFromString("0.0055")

	// LendersTitleRate prices lender's title insurance against the final loan.
	LendersTitleRate = decimal.RequireFromString("0.0055")

	// APRSpread is a static spread added to the note rate for the displayed
	// APR. It is a cosmetic approximation, not a true APR calculation.
	APRSpread = decimal.RequireFromString("0.0106")

	// MinimumDownPaymentRate is the FHA minimum down payment (3.5% of price).
	MinimumDownPaymentRate = decimal.RequireFromString("0.035")

	// MinimumBaseLoan is the smallest base loan we will quote.
	MinimumBaseLoan = decimal.RequireFromString("150000")
)

// Flat fee schedule.
var (
	AppraisalFee    = decimal.RequireFromString("650")
	CreditReportFee = decimal.RequireFromString("100")
	FloodCertFee    = decimal.RequireFromString("30")
	TitleSearchFee  = decimal.RequireFromString("500")
	SurveyFee       = decimal.RequireFromString("300")
	RecordingFee    = decimal.RequireFromString("299")
)

// Prepaid and initial-escrow floors.
var (
	PrepaidInsuranceFloor = decimal.RequireFromString("1800")
	EscrowTaxFloor        = decimal.RequireFromString("1125")
	EscrowInsuranceFloor  = decimal.RequireFromString("450")
)

// RateBucket maps a FICO range to a note rate.
type RateBucket struct {
	MinScore int
	MaxScore int
	Rate     decimal.Decimal
}

// RateTable looks up the note rate for a credit score. The current table has
// a single bucket covering all scores; tiering by FICO is additive.
type RateTable struct {
	buckets []RateBucket
}

// DefaultRateTable returns the current one-bucket table at the default rate.
func DefaultRateTable() RateTable {
	return RateTable{
		buckets: []RateBucket{
			{MinScore: 0, MaxScore: 850, Rate: DefaultNoteRate},
		},
	}
}

// NewRateTable builds a table from explicit buckets. Buckets are matched in
// order; the first bucket containing the score wins.
func NewRateTable(buckets []RateBucket) RateTable {
	return RateTable{buckets: append([]RateBucket(nil), buckets...)}
}

// RateFor returns the note rate for the given credit score, falling back to
// the default rate when no bucket matches.
func (t RateTable) RateFor(score int) decimal.Decimal {
	for _, b := range t.buckets {
		if score >= b.MinScore && score <= b.MaxScore {
			return b.Rate
		}
	}
	return DefaultNoteRate
}
