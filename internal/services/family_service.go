package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
	"heirloom/internal/pagination"
)

// familyService handles family member business logic.
type familyService struct {
	db *gorm.DB
}

// NewFamilyService creates a new FamilyServicer.
func NewFamilyService(db *gorm.DB) FamilyServicer {
	return &familyService{db: db}
}

// CreateFamilyMember adds a family member for a user.
func (s *familyService) CreateFamilyMember(userID uint, fields FamilyMemberFields) (*models.FamilyMember, error) {
	if fields.FullName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "full name is required")
	}

	member := &models.FamilyMember{
		UserID:      userID,
		FullName:    fields.FullName,
		Relation:    fields.Relation,
		Email:       fields.Email,
		Phone:       fields.Phone,
		DateOfBirth: fields.DateOfBirth,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// GetFamilyMembers retrieves a paginated list of a user's family members.
func (s *familyService) GetFamilyMembers(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.FamilyMember{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var members []models.FamilyMember
	if err := base.Scopes(pagination.Paginate(page)).Order("id ASC").Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(members, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetFamilyMemberByID retrieves one family member owned by the user.
func (s *familyService) GetFamilyMemberByID(userID, memberID uint) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := s.db.Where("id = ? AND user_id = ?", memberID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFamilyMemberNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

// UpdateFamilyMember replaces the attributes of one family member.
func (s *familyService) UpdateFamilyMember(userID, memberID uint, fields FamilyMemberFields) (*models.FamilyMember, error) {
	member, err := s.GetFamilyMemberByID(userID, memberID)
	if err != nil {
		return nil, err
	}
	if fields.FullName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "full name is required")
	}

	updates := map[string]interface{}{
		"full_name":     fields.FullName,
		"relation":      fields.Relation,
		"email":         fields.Email,
		"phone":         fields.Phone,
		"date_of_birth": fields.DateOfBirth,
	}
	if err := s.db.Model(member).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("id = ?", member.ID).First(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// DeleteFamilyMember removes a family member unless they are nominated on
// any asset.
func (s *familyService) DeleteFamilyMember(userID, memberID uint) error {
	member, err := s.GetFamilyMemberByID(userID, memberID)
	if err != nil {
		return err
	}

	var nominations int64
	if err := s.db.Model(&models.NomineeAssignment{}).Where("family_member_id = ?", member.ID).Count(&nominations).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if nominations > 0 {
		return apperrors.ErrFamilyMemberInUse
	}

	if err := s.db.Delete(member).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
