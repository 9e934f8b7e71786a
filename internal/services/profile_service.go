package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
)

// profileService handles profile and address business logic.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// GetProfile retrieves the profile row for a user, creating an empty one if
// the user predates profile rows.
func (s *profileService) GetProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpdateProfile applies the non-nil fields to the user's profile.
func (s *profileService) UpdateProfile(userID uint, fields ProfileFields) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.FullName != nil {
		updates["full_name"] = *fields.FullName
	}
	if fields.DateOfBirth != nil {
		updates["date_of_birth"] = *fields.DateOfBirth
	}
	if fields.Gender != nil {
		updates["gender"] = *fields.Gender
	}
	if fields.NationalID != nil {
		updates["national_id"] = *fields.NationalID
	}
	if fields.TaxID != nil {
		updates["tax_id"] = *fields.TaxID
	}
	if fields.Phone != nil {
		updates["phone"] = *fields.Phone
	}
	if fields.AlternatePhone != nil {
		updates["alternate_phone"] = *fields.AlternatePhone
	}

	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", profile.ID).First(profile).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return profile, nil
}

// GetAddresses lists all addresses of a user.
func (s *profileService) GetAddresses(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&addresses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return addresses, nil
}

// AddAddress creates a new address for the user.
func (s *profileService) AddAddress(userID uint, fields AddressFields) (*models.Address, error) {
	address := &models.Address{
		UserID:  userID,
		Kind:    fields.Kind,
		Line1:   fields.Line1,
		Line2:   fields.Line2,
		City:    fields.City,
		State:   fields.State,
		Pincode: fields.Pincode,
	}
	if address.Kind == "" {
		address.Kind = models.AddressKindHome
	}
	if err := s.db.Create(address).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return address, nil
}

// UpdateAddress replaces the attributes of one address.
func (s *profileService) UpdateAddress(userID, addressID uint, fields AddressFields) (*models.Address, error) {
	address, err := s.getAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"kind":    fields.Kind,
		"line1":   fields.Line1,
		"line2":   fields.Line2,
		"city":    fields.City,
		"state":   fields.State,
		"pincode": fields.Pincode,
	}
	if err := s.db.Model(address).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("id = ?", address.ID).First(address).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return address, nil
}

// DeleteAddress removes one address.
func (s *profileService) DeleteAddress(userID, addressID uint) error {
	address, err := s.getAddress(userID, addressID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(address).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *profileService) getAddress(userID, addressID uint) (*models.Address, error) {
	var address models.Address
	if err := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAddressNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &address, nil
}
