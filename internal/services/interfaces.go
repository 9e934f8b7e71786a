package services

import (
	"mime/multipart"
	"time"

	"heirloom/internal/models"
	"heirloom/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// ProfileFields holds the updatable profile attributes. Nil pointers leave
// the stored value untouched.
type ProfileFields struct {
	FullName       *string
	DateOfBirth    *time.Time
	Gender         *string
	NationalID     *string
	TaxID          *string
	Phone          *string
	AlternatePhone *string
}

// AddressFields holds the attributes of one postal address.
type AddressFields struct {
	Kind    models.AddressKind
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
}

// ProfileServicer defines the contract for profile and address management.
type ProfileServicer interface {
	GetProfile(userID uint) (*models.Profile, error)
	UpdateProfile(userID uint, fields ProfileFields) (*models.Profile, error)
	GetAddresses(userID uint) ([]models.Address, error)
	AddAddress(userID uint, fields AddressFields) (*models.Address, error)
	UpdateAddress(userID, addressID uint, fields AddressFields) (*models.Address, error)
	DeleteAddress(userID, addressID uint) error
}

// FamilyMemberFields holds the attributes of one family member.
type FamilyMemberFields struct {
	FullName    string
	Relation    string
	Email       string
	Phone       string
	DateOfBirth *time.Time
}

// FamilyServicer defines the contract for family member management.
type FamilyServicer interface {
	CreateFamilyMember(userID uint, fields FamilyMemberFields) (*models.FamilyMember, error)
	GetFamilyMembers(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error)
	GetFamilyMemberByID(userID, memberID uint) (*models.FamilyMember, error)
	UpdateFamilyMember(userID, memberID uint, fields FamilyMemberFields) (*models.FamilyMember, error)
	DeleteFamilyMember(userID, memberID uint) error
}

// AssetForm carries the raw form fields of an asset create or update, keyed
// the way the asset-kind rule tables expect them.
type AssetForm map[string]string

// AssetListOptions holds the list query knobs for asset listings.
type AssetListOptions struct {
	Sort  pagination.SortRequest
	Query string // free-text match on title and holder/institution names
}

// AssetServicer defines the contract for asset management. Create and
// update validate the form against the kind's rule table and reject with a
// field-keyed validation error before touching the database.
type AssetServicer interface {
	CreateAsset(userID uint, kind models.AssetKind, form AssetForm) (*models.Asset, error)
	GetUserAssets(userID uint, kind models.AssetKind, page pagination.PageRequest, opts AssetListOptions) (*pagination.PageResponse[models.Asset], error)
	GetAssetByID(userID, assetID uint) (*models.Asset, error)
	UpdateAsset(userID, assetID uint, form AssetForm) (*models.Asset, error)
	DeleteAsset(userID, assetID uint) error
}

// NomineeShare is one requested (member, percentage) pair.
type NomineeShare struct {
	FamilyMemberID uint `json:"family_member_id"`
	Percentage     int  `json:"percentage"`
}

// NomineeResult reports the outcome of one item of a batch nominee set.
// Items succeed or fail independently; there is no batch atomicity.
type NomineeResult struct {
	FamilyMemberID uint                      `json:"family_member_id"`
	Percentage     int                       `json:"percentage"`
	Assignment     *models.NomineeAssignment `json:"assignment,omitempty"`
	Err            error                     `json:"-"`
}

// NomineeAllocation is the allocation state of one asset.
type NomineeAllocation struct {
	Items          []models.NomineeAssignment `json:"items"`
	TotalAllocated int                        `json:"total_allocated"`
	Remaining      int                        `json:"remaining"`
}

// NomineeServicer defines the contract for nominee assignment management.
// The 100% allocation cap and the no-duplicate rule are enforced inside a
// database transaction on every mutation; CanAddNominee is the same check
// exposed for cheap pre-flight validation.
type NomineeServicer interface {
	CanAddNominee(existing []models.NomineeAssignment, memberID uint, percentage int) error
	AddNominee(userID, assetID, memberID uint, percentage int) (*models.NomineeAssignment, error)
	GetAssetNominees(userID, assetID uint) (*NomineeAllocation, error)
	UpdateNominee(userID, assignmentID uint, percentage int) (*models.NomineeAssignment, error)
	RemoveNominee(userID, assignmentID uint) error
	ReplaceNominees(userID, assetID uint, shares []NomineeShare) ([]NomineeResult, error)
}

// DocumentServicer defines the contract for supporting document attachments.
type DocumentServicer interface {
	Attach(userID, assetID uint, file *multipart.FileHeader) (*models.AssetDocument, error)
	Get(userID, assetID uint) (*models.AssetDocument, string, error)
	Remove(userID, assetID uint) error
}

// BankDirectoryServicer resolves IFSC routing codes to bank and branch
// names for the derived read-only fields of bank assets.
type BankDirectoryServicer interface {
	Lookup(ifsc string) (*models.BankBranch, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
