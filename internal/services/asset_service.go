package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/fieldrules"
	"heirloom/internal/models"
	"heirloom/internal/pagination"
)

// assetSortColumns is the allow-list for asset list sorting.
var assetSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

// assetService handles asset business logic.
type assetService struct {
	db        *gorm.DB
	directory BankDirectoryServicer
	now       func() time.Time
}

// NewAssetService creates a new AssetServicer. The bank directory resolves
// IFSC codes into the derived bank/branch fields of bank assets.
func NewAssetService(db *gorm.DB, directory BankDirectoryServicer) AssetServicer {
	return &assetService{db: db, directory: directory, now: time.Now}
}

// CreateAsset validates the form against the kind's rule table and persists
// a new asset. Validation failures return ErrValidation with a field-keyed
// error map and nothing is written.
func (s *assetService) CreateAsset(userID uint, kind models.AssetKind, form AssetForm) (*models.Asset, error) {
	branch, err := s.validateForm(kind, form)
	if err != nil {
		return nil, err
	}

	asset := &models.Asset{UserID: userID, Kind: kind}
	applyForm(asset, form, branch)

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// GetUserAssets retrieves a paginated, sortable, filterable list of a
// user's assets of one kind.
func (s *assetService) GetUserAssets(userID uint, kind models.AssetKind, page pagination.PageRequest, opts AssetListOptions) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	base := s.db.Model(&models.Asset{}).Where("user_id = ? AND kind = ?", userID, kind)
	if q := strings.TrimSpace(opts.Query); q != "" {
		like := "%" + q + "%"
		base = base.Where(
			"title LIKE ? OR account_holder_name LIKE ? OR lender_name LIKE ? OR institution_name LIKE ? OR provider_name LIKE ? OR broker_name LIKE ?",
			like, like, like, like, like, like,
		)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.
		Scopes(pagination.Sort(opts.Sort, assetSortColumns, "created_at"), pagination.Paginate(page)).
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAssetByID retrieves one asset with its nominees and document nested.
func (s *assetService) GetAssetByID(userID, assetID uint) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.
		Preload("Nominees").
		Preload("Nominees.FamilyMember").
		Preload("Document").
		Where("id = ? AND user_id = ?", assetID, userID).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// UpdateAsset validates the form and replaces the asset's kind-specific
// fields as a full-record update. The kind of an asset never changes.
func (s *assetService) UpdateAsset(userID, assetID uint, form AssetForm) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	branch, err := s.validateForm(asset.Kind, form)
	if err != nil {
		return nil, err
	}

	applyForm(&asset, form, branch)
	if err := s.db.Save(&asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// DeleteAsset soft-deletes an asset along with its nominee assignments.
// The document row goes for real, matching documentService.Remove: the
// unique asset_id index must not keep dead entries. The stored file is left
// for the storage sweeper.
func (s *assetService) DeleteAsset(userID, assetID uint) error {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", asset.ID).Delete(&models.NomineeAssignment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Unscoped().Where("asset_id = ?", asset.ID).Delete(&models.AssetDocument{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(asset).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// validateForm runs the kind's rule table and, for bank assets, the IFSC
// directory lookup. Returns the resolved branch for bank assets.
func (s *assetService) validateForm(kind models.AssetKind, form AssetForm) (*models.BankBranch, error) {
	rules, err := fieldrules.ForAsset(kind, form)
	if err != nil {
		return nil, err
	}

	fieldErrs := fieldrules.Validate(rules, form, s.now())

	var branch *models.BankBranch
	if kind == models.AssetKindBankAccount && fieldErrs["ifsc_code"] == "" {
		branch, err = s.directory.Lookup(form["ifsc_code"])
		if err != nil {
			if errors.Is(err, apperrors.ErrIFSCNotFound) || errors.Is(err, apperrors.ErrInvalidIFSC) {
				fieldErrs["ifsc_code"] = "Unknown IFSC code"
			} else {
				return nil, err
			}
		}
	}

	if len(fieldErrs) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrValidation, fieldErrs)
	}
	return branch, nil
}

// applyForm writes the validated form values onto the asset. All fields of
// the asset's kind are set unconditionally so updates behave as full-record
// replacement.
func applyForm(asset *models.Asset, form AssetForm, branch *models.BankBranch) {
	asset.Notes = strings.TrimSpace(form["notes"])

	switch asset.Kind {
	case models.AssetKindBankAccount:
		asset.AccountHolderName = form["account_holder_name"]
		asset.AccountNumber = form["account_number"]
		asset.IFSCCode = form["ifsc_code"]
		asset.AccountType = form["account_type"]
		asset.AccountBalance = amount(form, "account_balance")
		asset.AccountOpeningDate = date(form, "account_opening_date")
		if branch != nil {
			asset.BankName = branch.BankName
			asset.BranchName = branch.BranchName
		}
	case models.AssetKindLoan:
		asset.LoanType = models.LoanType(form["loan_type"])
		asset.LenderName = form["lender_name"]
		asset.LoanAmount = amount(form, "loan_amount")
		asset.InterestRate = rate(form, "interest_rate")
		asset.TenureMonths = integer(form, "tenure_months")
		asset.LoanStartDate = date(form, "loan_start_date")

		// Switching the loan type clears the other variant's fields.
		asset.LoanAccountNumber = ""
		asset.EMIAmount = 0
		asset.CollateralDetails = ""
		asset.AgreedRepaymentDate = nil
		asset.PaymentMode = ""
		asset.RepaymentFrequency = ""
		switch asset.LoanType {
		case models.LoanTypeSecured:
			asset.LoanAccountNumber = form["loan_account_number"]
			asset.EMIAmount = amount(form, "emi_amount")
			asset.CollateralDetails = form["collateral_details"]
		case models.LoanTypeUnsecured:
			asset.AgreedRepaymentDate = date(form, "agreed_repayment_date")
			asset.PaymentMode = form["payment_mode"]
			asset.RepaymentFrequency = form["repayment_frequency"]
		}
	case models.AssetKindDeposit:
		asset.DepositType = form["deposit_type"]
		asset.InstitutionName = form["institution_name"]
		asset.DepositAmount = amount(form, "deposit_amount")
		asset.InterestRate = rate(form, "interest_rate")
		asset.DepositStartDate = date(form, "deposit_start_date")
		asset.MaturityDate = date(form, "maturity_date")
		asset.MaturityAmount = amount(form, "maturity_amount")
	case models.AssetKindInsurance:
		asset.InsuranceType = models.InsuranceType(form["insurance_type"])
		asset.PolicyNumber = form["policy_number"]
		asset.ProviderName = form["provider_name"]
		asset.PremiumAmount = amount(form, "premium_amount")
		asset.CoverageAmount = amount(form, "coverage_amount")
		asset.PolicyStartDate = date(form, "policy_start_date")
		asset.PolicyExpiryDate = date(form, "policy_expiry_date")
		asset.VehicleRegistration = ""
		if asset.InsuranceType == models.InsuranceTypeVehicle {
			asset.VehicleRegistration = form["vehicle_registration"]
		}
	case models.AssetKindStock:
		asset.BrokerName = form["broker_name"]
		asset.DematAccountNumber = form["demat_account_number"]
		asset.HoldingsValue = amount(form, "holdings_value")
	case models.AssetKindRecord:
		asset.RecordType = form["record_type"]
		asset.IssueDate = date(form, "issue_date")
		asset.ExpiryDate = date(form, "expiry_date")
	}

	asset.Title = strings.TrimSpace(form["title"])
	if asset.Title == "" {
		asset.Title = defaultTitle(asset)
	}
}

func defaultTitle(asset *models.Asset) string {
	switch asset.Kind {
	case models.AssetKindBankAccount:
		if asset.BankName != "" {
			return asset.BankName + " " + asset.AccountType + " account"
		}
		return asset.AccountType + " account"
	case models.AssetKindLoan:
		return asset.LenderName + " loan"
	case models.AssetKindDeposit:
		return asset.InstitutionName + " " + asset.DepositType + " deposit"
	case models.AssetKindInsurance:
		return asset.ProviderName + " " + string(asset.InsuranceType) + " policy"
	case models.AssetKindStock:
		return asset.BrokerName + " holdings"
	case models.AssetKindRecord:
		return asset.RecordType
	}
	return string(asset.Kind)
}

// The parse helpers run on already-validated values, so failures collapse
// to zero values instead of surfacing a second time.

func amount(form AssetForm, key string) int64 {
	v, _ := fieldrules.ParseAmount(form[key])
	return v
}

func date(form AssetForm, key string) *time.Time {
	v, _ := fieldrules.ParseDate(form[key])
	return v
}

func rate(form AssetForm, key string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(form[key]), 64)
	return v
}

func integer(form AssetForm, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(form[key]))
	return v
}
