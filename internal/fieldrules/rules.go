package fieldrules

import (
	"regexp"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
)

// Identifier formats shared across asset kinds.
var (
	PatternIFSC    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	PatternPAN     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	PatternAadhaar = regexp.MustCompile(`^[0-9]{12}$`)
	PatternPhone   = regexp.MustCompile(`^[0-9]{10}$`)

	patternAccountNumber = regexp.MustCompile(`^[0-9]{5,18}$`)
	patternAlphanumeric  = regexp.MustCompile(`^[A-Za-z0-9/-]{3,30}$`)
	patternVehicleReg    = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{1,2}[0-9]{4}$`)
)

var (
	zero    = 0.0
	hundred = 100.0
)

var bankRules = RuleSet{
	"account_holder_name":  {Required: true},
	"account_number":       {Required: true, Pattern: patternAccountNumber, Message: "Account number must be 5-18 digits"},
	"ifsc_code":            {Required: true, Pattern: PatternIFSC, Message: "Invalid IFSC code"},
	"account_type":         {Required: true, Enum: []string{"Savings", "Current", "Salary", "NRI"}},
	"account_balance":      {Required: true, Numeric: true, Min: &zero},
	"account_opening_date": {Required: true, NotFuture: true},
}

var loanCommonRules = RuleSet{
	"loan_type":       {Required: true, Enum: []string{"secured", "unsecured"}},
	"lender_name":     {Required: true},
	"loan_amount":     {Required: true, Positive: true},
	"interest_rate":   {Numeric: true, Min: &zero, Max: &hundred},
	"tenure_months":   {Numeric: true, Positive: true},
	"loan_start_date": {Required: true, NotFuture: true},
}

var loanSecuredRules = RuleSet{
	"loan_account_number": {Required: true, Pattern: patternAlphanumeric, Message: "Invalid loan account number"},
	"emi_amount":          {Required: true, Positive: true},
	"collateral_details":  {Required: true},
}

var loanUnsecuredRules = RuleSet{
	"agreed_repayment_date": {Required: true, After: "loan_start_date"},
	"payment_mode":          {Required: true, Enum: []string{"cash", "bank_transfer", "upi", "cheque"}},
	"repayment_frequency":   {Required: true, Enum: []string{"monthly", "quarterly", "yearly", "lump_sum"}},
}

var depositRules = RuleSet{
	"deposit_type":       {Required: true, Enum: []string{"fixed", "recurring"}},
	"institution_name":   {Required: true},
	"deposit_amount":     {Required: true, Positive: true},
	"interest_rate":      {Numeric: true, Min: &zero, Max: &hundred},
	"deposit_start_date": {Required: true, NotFuture: true},
	"maturity_date":      {Required: true, After: "deposit_start_date"},
	"maturity_amount":    {Positive: true},
}

var insuranceCommonRules = RuleSet{
	"insurance_type":     {Required: true, Enum: []string{"medical", "vehicle", "term"}},
	"policy_number":      {Required: true, Pattern: patternAlphanumeric, Message: "Invalid policy number"},
	"provider_name":      {Required: true},
	"premium_amount":     {Required: true, Positive: true},
	"coverage_amount":    {Required: true, Positive: true},
	"policy_start_date":  {Required: true, NotFuture: true},
	"policy_expiry_date": {Required: true, After: "policy_start_date"},
}

var insuranceVehicleRules = RuleSet{
	"vehicle_registration": {Required: true, Pattern: patternVehicleReg, Message: "Invalid vehicle registration number"},
}

var stockRules = RuleSet{
	"broker_name":          {Required: true},
	"demat_account_number": {Required: true, Pattern: patternAlphanumeric, Message: "Invalid demat account number"},
	"holdings_value":       {Numeric: true, Min: &zero},
}

var recordRules = RuleSet{
	"record_type": {Required: true, Enum: []string{"will", "deed", "certificate", "other"}},
	"issue_date":  {NotFuture: true},
	"expiry_date": {After: "issue_date"},
}

// ForAsset returns the rule set for an asset kind, merged with the rules of
// the variant the submitted values select (loan type, insurance type). The
// variant tag itself is validated by the returned set, so an absent or
// unknown tag surfaces as a field error rather than a lookup failure.
func ForAsset(kind models.AssetKind, values map[string]string) (RuleSet, error) {
	switch kind {
	case models.AssetKindBankAccount:
		return bankRules, nil
	case models.AssetKindLoan:
		switch values["loan_type"] {
		case string(models.LoanTypeSecured):
			return merge(loanCommonRules, loanSecuredRules), nil
		case string(models.LoanTypeUnsecured):
			return merge(loanCommonRules, loanUnsecuredRules), nil
		default:
			return loanCommonRules, nil
		}
	case models.AssetKindDeposit:
		return depositRules, nil
	case models.AssetKindInsurance:
		if values["insurance_type"] == string(models.InsuranceTypeVehicle) {
			return merge(insuranceCommonRules, insuranceVehicleRules), nil
		}
		return insuranceCommonRules, nil
	case models.AssetKindStock:
		return stockRules, nil
	case models.AssetKindRecord:
		return recordRules, nil
	default:
		return nil, apperrors.ErrInvalidAssetKind
	}
}

func merge(sets ...RuleSet) RuleSet {
	out := make(RuleSet)
	for _, set := range sets {
		for field, rule := range set {
			out[field] = rule
		}
	}
	return out
}
