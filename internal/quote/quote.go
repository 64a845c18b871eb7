// Package quote ties the input parser, eligibility guard, and loan math
// engine into the single evaluate operation exposed to the transport layer.
package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lenderkit/fha-loan-estimate/pkg/constants"
	"github.com/lenderkit/fha-loan-estimate/pkg/engine"
	"github.com/lenderkit/fha-loan-estimate/pkg/money"
	"github.com/lenderkit/fha-loan-estimate/pkg/parse"
	"github.com/lenderkit/fha-loan-estimate/pkg/pricing"
)

// Request carries the raw, loosely-typed borrower input exactly as the
// transport decoded it. Nil means the field was not supplied. Evaluation
// never fails on malformed values; parsing leniency is the parser's job.
type Request struct {
	PurchasePrice        interface{}
	BaseLoan             interface{}
	DownPaymentValue     interface{}
	DownPaymentIsPercent interface{}
	CreditScore          interface{}
	MonthlyTaxes         interface{}
	MonthlyInsurance     interface{}
	MonthlyHOA           interface{}
	PropertyType         interface{}
	LenderCreditPercent  interface{}
	InterestRate         interface{}
	TermYears            interface{}
}

// Decline is a normal, expected outcome: the input failed a policy rule.
type Decline struct {
	Code    string
	Message string
}

// Result is either a computed quote or a decline, never both.
type Result struct {
	Quote        *engine.Quote
	Decline      *Decline
	PropertyType parse.PropertyType
	CreditScore  int
}

// Declined reports whether the evaluation ended in a policy decline.
func (r Result) Declined() bool {
	return r.Decline != nil
}

// Policy extends the engine toggles with parser behavior.
type Policy struct {
	Engine              engine.Policy
	RichPropertyAliases bool
}

// DefaultPolicy matches the behavior of the current estimate revision.
func DefaultPolicy() Policy {
	return Policy{
		Engine: engine.Policy{
			EnforceMinimumDownPayment: true,
			ApplyPrepaidFloors:        true,
			AllowLenderCredit:         true,
		},
		RichPropertyAliases: true,
	}
}

// Evaluator runs the quote pipeline: parse, guard, compute.
type Evaluator struct {
	logger *zap.Logger
	policy Policy
	rates  pricing.RateTable
}

// NewEvaluator creates an evaluator with the given policy and rate table.
func NewEvaluator(logger *zap.Logger, policy Policy, rates pricing.RateTable) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{logger: logger, policy: policy, rates: rates}
}

// Evaluate computes a quote or a decline for the request. It is pure and
// deterministic: identical requests yield identical results, and no input,
// however malformed, produces an error.
func (e *Evaluator) Evaluate(req Request) Result {
	if missing := missingFields(req); len(missing) > 0 {
		return declineMissing(missing)
	}

	price := parse.Amount(req.PurchasePrice)
	score := parse.Score(req.CreditScore)
	property := parse.Property(req.PropertyType, e.policy.RichPropertyAliases)

	if !property.Eligible() {
		return Result{Decline: declineProperty(property), PropertyType: property, CreditScore: score}
	}
	if score < constants.MinimumCreditScore {
		return Result{Decline: declineCreditScore(score), PropertyType: property, CreditScore: score}
	}

	downPayment := e.resolveDownPayment(req, price)
	baseLoan := engine.BaseLoan(price, downPayment)
	if baseLoan.LessThan(pricing.MinimumBaseLoan) {
		return Result{Decline: declineLoanMinimum(baseLoan), PropertyType: property, CreditScore: score}
	}

	noteRate := parse.Rate(req.InterestRate, e.rates.RateFor(score))
	termYears := int(parse.Amount(req.TermYears).IntPart())
	if termYears <= 0 {
		termYears = constants.DefaultTermYears
	}

	// Monthly figures are normalized to cents here so the engine only ever
	// sums cents-exact line items.
	in := engine.Input{
		PurchasePrice:       money.Round2(price),
		DownPayment:         downPayment,
		CreditScore:         score,
		NoteRate:            noteRate,
		TermMonths:          termYears * constants.MonthsPerYear,
		MonthlyTaxes:        money.Round2(parse.Amount(req.MonthlyTaxes)),
		MonthlyInsurance:    money.Round2(parse.Amount(req.MonthlyInsurance)),
		MonthlyHOA:          money.Round2(parse.Amount(req.MonthlyHOA)),
		LenderCreditPercent: parse.Amount(req.LenderCreditPercent),
	}

	q := engine.Compute(in, e.policy.Engine)

	e.logger.Debug(fmt.Sprintf("quoted %s loan at %s for score %d",
		q.FinalLoan.StringFixed(2), noteRate.String(), score),
		zap.String("op", "quote.Evaluate"),
	)

	return Result{Quote: &q, PropertyType: property, CreditScore: score}
}

// resolveDownPayment mirrors the fail-safe order of the original estimate:
// an explicit base loan wins, then the down-payment value (percent when
// flagged or suffixed with "%"), then the policy default.
func (e *Evaluator) resolveDownPayment(req Request, price decimal.Decimal) decimal.Decimal {
	pol := e.policy.Engine

	if baseLoan := parse.Amount(req.BaseLoan); baseLoan.IsPositive() {
		dp := price.Sub(baseLoan)
		if dp.IsNegative() {
			dp = decimal.Zero
		}
		return engine.DownPayment(price, dp, false, pol)
	}

	value, hasPercentSuffix := parse.PercentOrAmount(req.DownPaymentValue)
	isPercent := hasPercentSuffix || parse.Bool(req.DownPaymentIsPercent) == parse.True
	return engine.DownPayment(price, value, isPercent, pol)
}
