package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lenderkit/fha-loan-estimate/pkg/constants"
	"github.com/lenderkit/fha-loan-estimate/pkg/format"
	"github.com/lenderkit/fha-loan-estimate/pkg/parse"
	"github.com/lenderkit/fha-loan-estimate/pkg/pricing"
)

// missingFields names every required field absent from the request, in a
// fixed order. The down-payment requirement is satisfied by either a
// down-payment value or an explicit base loan.
func missingFields(req Request) []string {
	var missing []string
	if req.PurchasePrice == nil {
		missing = append(missing, "purchase price")
	}
	if req.DownPaymentValue == nil && req.BaseLoan == nil {
		missing = append(missing, "down payment")
	}
	if req.CreditScore == nil {
		missing = append(missing, "credit score")
	}
	if req.MonthlyTaxes == nil {
		missing = append(missing, "monthly taxes")
	}
	if req.MonthlyInsurance == nil {
		missing = append(missing, "monthly insurance")
	}
	if req.PropertyType == nil {
		missing = append(missing, "property type")
	}
	return missing
}

func declineMissing(missing []string) Result {
	return Result{Decline: &Decline{
		Code: constants.DeclineMissingFields,
		Message: fmt.Sprintf("we need a bit more information before we can quote this loan: %s.",
			strings.Join(missing, ", ")),
	}}
}

func declineProperty(p parse.PropertyType) *Decline {
	msg := "we currently quote fha for single-family (incl. 1-4 unit) and townhome properties.\n" +
		"condos & manufactured homes aren't supported here."
	if p == parse.PropertyUnrecognized {
		msg = "we couldn't recognize that property type.\n" +
			"we currently quote fha for single-family (incl. 1-4 unit) and townhome properties."
	}
	return &Decline{Code: constants.DeclinePropertyType, Message: msg}
}

func declineCreditScore(score int) *Decline {
	return &Decline{
		Code: constants.DeclineCreditScore,
		Message: fmt.Sprintf("an fha quote here requires a minimum credit score of %d (received %d).",
			constants.MinimumCreditScore, score),
	}
}

func declineLoanMinimum(baseLoan decimal.Decimal) *Decline {
	return &Decline{
		Code: constants.DeclineLoanMinimum,
		Message: fmt.Sprintf("the computed base loan of %s is below our %s minimum loan amount.",
			format.Currency(baseLoan), format.Currency(pricing.MinimumBaseLoan)),
	}
}
