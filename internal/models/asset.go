package models

import "time"

// AssetKind identifies which family of legacy asset a record belongs to.
type AssetKind string

const (
	AssetKindBankAccount AssetKind = "bank_account"
	AssetKindLoan        AssetKind = "loan"
	AssetKindDeposit     AssetKind = "deposit"
	AssetKindInsurance   AssetKind = "insurance"
	AssetKindStock       AssetKind = "stock"
	AssetKindRecord      AssetKind = "record" // standalone document, e.g. will or property deed
)

// LoanType splits loans into their secured and unsecured variants, which
// carry different required fields.
type LoanType string

const (
	LoanTypeSecured   LoanType = "secured"
	LoanTypeUnsecured LoanType = "unsecured"
)

// InsuranceType identifies the insurance policy variant.
type InsuranceType string

const (
	InsuranceTypeMedical InsuranceType = "medical"
	InsuranceTypeVehicle InsuranceType = "vehicle"
	InsuranceTypeTerm    InsuranceType = "term"
)

// Asset is a single legacy asset owned by a user. All kinds share one table;
// only the columns relevant to the record's kind are populated. Monetary
// amounts are stored in paise.
type Asset struct {
	Base
	UserID uint      `gorm:"not null;index" json:"user_id"`
	Kind   AssetKind `gorm:"not null;index" json:"kind"`
	Title  string    `gorm:"not null" json:"title"`
	Notes  string    `json:"notes,omitempty"`

	// Bank account
	AccountHolderName  string     `json:"account_holder_name,omitempty"`
	AccountNumber      string     `json:"account_number,omitempty"`
	IFSCCode           string     `gorm:"size:11" json:"ifsc_code,omitempty"`
	BankName           string     `json:"bank_name,omitempty"`   // derived from IFSC directory
	BranchName         string     `json:"branch_name,omitempty"` // derived from IFSC directory
	AccountType        string     `json:"account_type,omitempty"`
	AccountBalance     int64      `json:"account_balance,omitempty"`
	AccountOpeningDate *time.Time `json:"account_opening_date,omitempty"`

	// Loan (common)
	LoanType      LoanType   `json:"loan_type,omitempty"`
	LenderName    string     `json:"lender_name,omitempty"`
	LoanAmount    int64      `json:"loan_amount,omitempty"`
	InterestRate  float64    `json:"interest_rate,omitempty"`
	TenureMonths  int        `json:"tenure_months,omitempty"`
	LoanStartDate *time.Time `json:"loan_start_date,omitempty"`

	// Loan (secured)
	LoanAccountNumber string `json:"loan_account_number,omitempty"`
	EMIAmount         int64  `json:"emi_amount,omitempty"`
	CollateralDetails string `json:"collateral_details,omitempty"`

	// Loan (unsecured)
	AgreedRepaymentDate *time.Time `json:"agreed_repayment_date,omitempty"`
	PaymentMode         string     `json:"payment_mode,omitempty"`
	RepaymentFrequency  string     `json:"repayment_frequency,omitempty"`

	// Deposit
	DepositType      string     `json:"deposit_type,omitempty"` // fixed, recurring
	InstitutionName  string     `json:"institution_name,omitempty"`
	DepositAmount    int64      `json:"deposit_amount,omitempty"`
	DepositStartDate *time.Time `json:"deposit_start_date,omitempty"`
	MaturityDate     *time.Time `json:"maturity_date,omitempty"`
	MaturityAmount   int64      `json:"maturity_amount,omitempty"`

	// Insurance
	InsuranceType       InsuranceType `json:"insurance_type,omitempty"`
	PolicyNumber        string        `json:"policy_number,omitempty"`
	ProviderName        string        `json:"provider_name,omitempty"`
	PremiumAmount       int64         `json:"premium_amount,omitempty"`
	CoverageAmount      int64         `json:"coverage_amount,omitempty"`
	PolicyStartDate     *time.Time    `json:"policy_start_date,omitempty"`
	PolicyExpiryDate    *time.Time    `json:"policy_expiry_date,omitempty"`
	VehicleRegistration string        `json:"vehicle_registration,omitempty"`

	// Stock holding
	BrokerName         string `json:"broker_name,omitempty"`
	DematAccountNumber string `json:"demat_account_number,omitempty"`
	HoldingsValue      int64  `json:"holdings_value,omitempty"`

	// Record (standalone document)
	RecordType string     `json:"record_type,omitempty"` // will, deed, certificate, other
	IssueDate  *time.Time `json:"issue_date,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`

	// Relationships
	Nominees []NomineeAssignment `gorm:"foreignKey:AssetID" json:"nominees,omitempty"`
	Document *AssetDocument      `gorm:"foreignKey:AssetID" json:"document,omitempty"`
}
