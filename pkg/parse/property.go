package parse

import "strings"

// PropertyType is the normalized property category.
type PropertyType int

const (
	// PropertyUnrecognized covers free text we could not classify.
	PropertyUnrecognized PropertyType = iota
	// PropertySingleFamily is a detached single-family residence.
	PropertySingleFamily
	// PropertyTownhome is an attached townhome.
	PropertyTownhome
	// PropertyOneToFour is a 1-4 unit property (duplex through quadplex).
	PropertyOneToFour
	// PropertyIneligible covers condos and manufactured/mobile homes, which
	// policy excludes. Kept distinct from PropertyUnrecognized so decline
	// messaging can name the rule.
	PropertyIneligible
)

// String returns the label used in reports.
func (p PropertyType) String() string {
	switch p {
	case PropertySingleFamily:
		return "single-family"
	case PropertyTownhome:
		return "townhome"
	case PropertyOneToFour:
		return "1-4-unit"
	case PropertyIneligible:
		return "ineligible"
	default:
		return "unrecognized"
	}
}

// Eligible reports whether the category can be quoted.
func (p PropertyType) Eligible() bool {
	switch p {
	case PropertySingleFamily, PropertyTownhome, PropertyOneToFour:
		return true
	}
	return false
}

var baseAliases = map[string]PropertyType{
	"sfr":           PropertySingleFamily,
	"single family": PropertySingleFamily,
	"single-family": PropertySingleFamily,
	"townhome":      PropertyTownhome,
	"townhouse":     PropertyTownhome,
	"th":            PropertyTownhome,
	"duplex":        PropertyOneToFour,
	"triplex":       PropertyOneToFour,
	"quadplex":      PropertyOneToFour,
	"2-4 unit":      PropertyOneToFour,
	"1-4 unit":      PropertyOneToFour,
}

var richAliases = map[string]PropertyType{
	"sfh":                 PropertySingleFamily,
	"detached":            PropertySingleFamily,
	"house":               PropertySingleFamily,
	"single family home":  PropertySingleFamily,
	"single family house": PropertySingleFamily,
	"town home":           PropertyTownhome,
	"row home":            PropertyTownhome,
	"rowhouse":            PropertyTownhome,
	"fourplex":            PropertyOneToFour,
	"multi-unit":          PropertyOneToFour,
	"multifamily":         PropertyOneToFour,
	"2 unit":              PropertyOneToFour,
	"3 unit":              PropertyOneToFour,
	"4 unit":              PropertyOneToFour,
	"1-4":                 PropertyOneToFour,
	"one to four unit":    PropertyOneToFour,
}

var unitTokens = []string{"duplex", "triplex", "quadplex", "fourplex", "unit"}

// Property normalizes free-form property-type text. Condo and
// manufactured/mobile keywords win over everything else. The rich flag adds
// the extended alias set.
func Property(raw interface{}, rich bool) PropertyType {
	s := strings.ToLower(asString(raw))
	if s == "" {
		return PropertyUnrecognized
	}

	// Excluded categories first, even if the text also mentions an eligible one.
	for _, k := range []string{"condo", "manufactured", "mobile"} {
		if strings.Contains(s, k) {
			return PropertyIneligible
		}
	}

	if p, ok := baseAliases[s]; ok {
		return p
	}
	if rich {
		if p, ok := richAliases[s]; ok {
			return p
		}
	}

	// Substring heuristics for longer answers like "a single family home".
	if strings.Contains(s, "town") {
		return PropertyTownhome
	}
	if strings.Contains(s, "single") && strings.Contains(s, "family") {
		return PropertySingleFamily
	}
	for _, tok := range unitTokens {
		if strings.Contains(s, tok) {
			return PropertyOneToFour
		}
	}

	return PropertyUnrecognized
}
