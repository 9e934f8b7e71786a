package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
)

// AllocationCap is the maximum total percentage the nominees of one asset
// may hold.
const AllocationCap = 100

// nomineeService handles nominee assignment business logic.
type nomineeService struct {
	db *gorm.DB
}

// NewNomineeService creates a new NomineeServicer.
func NewNomineeService(db *gorm.DB) NomineeServicer {
	return &nomineeService{db: db}
}

// CanAddNominee checks whether the candidate (member, percentage) may join
// the existing assignments of an asset. It never mutates anything; the same
// check runs again inside the transaction that persists the assignment.
func (s *nomineeService) CanAddNominee(existing []models.NomineeAssignment, memberID uint, percentage int) error {
	if memberID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "family member is required")
	}
	if percentage < 1 || percentage > AllocationCap {
		return apperrors.ErrInvalidPercentage
	}

	total := 0
	for _, a := range existing {
		if a.FamilyMemberID == memberID {
			return apperrors.ErrDuplicateNominee
		}
		total += a.Percentage
	}
	if total+percentage > AllocationCap {
		return apperrors.ErrAllocationExceeded
	}
	return nil
}

// AddNominee creates one nominee assignment on an asset. The duplicate and
// cap checks run against the current server-side state inside the
// transaction, so the persisted total can never pass the cap even under
// concurrent clients.
func (s *nomineeService) AddNominee(userID, assetID, memberID uint, percentage int) (*models.NomineeAssignment, error) {
	if err := s.checkAssetOwnership(userID, assetID); err != nil {
		return nil, err
	}
	if err := s.checkMemberOwnership(userID, memberID); err != nil {
		return nil, err
	}

	assignment := &models.NomineeAssignment{
		AssetID:        assetID,
		FamilyMemberID: memberID,
		Percentage:     percentage,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.NomineeAssignment
		if err := tx.Where("asset_id = ?", assetID).Find(&existing).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.CanAddNominee(existing, memberID, percentage); err != nil {
			return err
		}
		if err := tx.Create(assignment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("FamilyMember").First(assignment, assignment.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assignment, nil
}

// GetAssetNominees lists the assignments of an asset with the allocation
// summary.
func (s *nomineeService) GetAssetNominees(userID, assetID uint) (*NomineeAllocation, error) {
	if err := s.checkAssetOwnership(userID, assetID); err != nil {
		return nil, err
	}

	var items []models.NomineeAssignment
	if err := s.db.Preload("FamilyMember").Where("asset_id = ?", assetID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := 0
	for _, a := range items {
		total += a.Percentage
	}
	return &NomineeAllocation{
		Items:          items,
		TotalAllocated: total,
		Remaining:      AllocationCap - total,
	}, nil
}

// UpdateNominee changes the percentage of one assignment, re-checking the
// cap against the asset's other assignments.
func (s *nomineeService) UpdateNominee(userID, assignmentID uint, percentage int) (*models.NomineeAssignment, error) {
	assignment, err := s.getOwnedAssignment(userID, assignmentID)
	if err != nil {
		return nil, err
	}
	if percentage < 1 || percentage > AllocationCap {
		return nil, apperrors.ErrInvalidPercentage
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var others []models.NomineeAssignment
		if err := tx.Where("asset_id = ? AND id <> ?", assignment.AssetID, assignment.ID).Find(&others).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		total := percentage
		for _, a := range others {
			total += a.Percentage
		}
		if total > AllocationCap {
			return apperrors.ErrAllocationExceeded
		}
		if err := tx.Model(assignment).Update("percentage", percentage).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("FamilyMember").First(assignment, assignment.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assignment, nil
}

// RemoveNominee deletes one assignment.
func (s *nomineeService) RemoveNominee(userID, assignmentID uint) error {
	assignment, err := s.getOwnedAssignment(userID, assignmentID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(assignment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ReplaceNominees replaces the nominee set of an asset with the given
// shares. Each share is applied as an independent create: one failing item
// does not roll back the others, and the result reports every item's
// outcome. The cap still holds per item, so the persisted set never
// oversubscribes the asset.
func (s *nomineeService) ReplaceNominees(userID, assetID uint, shares []NomineeShare) ([]NomineeResult, error) {
	if err := s.checkAssetOwnership(userID, assetID); err != nil {
		return nil, err
	}

	if err := s.db.Where("asset_id = ?", assetID).Delete(&models.NomineeAssignment{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	results := make([]NomineeResult, 0, len(shares))
	for _, share := range shares {
		assignment, err := s.AddNominee(userID, assetID, share.FamilyMemberID, share.Percentage)
		results = append(results, NomineeResult{
			FamilyMemberID: share.FamilyMemberID,
			Percentage:     share.Percentage,
			Assignment:     assignment,
			Err:            err,
		})
	}
	return results, nil
}

func (s *nomineeService) checkAssetOwnership(userID, assetID uint) error {
	var count int64
	if err := s.db.Model(&models.Asset{}).Where("id = ? AND user_id = ?", assetID, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

func (s *nomineeService) checkMemberOwnership(userID, memberID uint) error {
	var count int64
	if err := s.db.Model(&models.FamilyMember{}).Where("id = ? AND user_id = ?", memberID, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrFamilyMemberNotFound
	}
	return nil
}

func (s *nomineeService) getOwnedAssignment(userID, assignmentID uint) (*models.NomineeAssignment, error) {
	var assignment models.NomineeAssignment
	if err := s.db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNomineeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.checkAssetOwnership(userID, assignment.AssetID); err != nil {
		// The asset not being visible to this user means the assignment
		// isn't either.
		return nil, apperrors.ErrNomineeNotFound
	}
	return &assignment, nil
}
