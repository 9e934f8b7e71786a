package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/fieldrules"
	"heirloom/internal/models"
)

// bankDirectoryService resolves IFSC codes against the seeded bank_branches
// table.
type bankDirectoryService struct {
	db *gorm.DB
}

// NewBankDirectoryService creates a new BankDirectoryServicer.
func NewBankDirectoryService(db *gorm.DB) BankDirectoryServicer {
	return &bankDirectoryService{db: db}
}

// Lookup resolves an IFSC code to its bank and branch.
func (s *bankDirectoryService) Lookup(ifsc string) (*models.BankBranch, error) {
	ifsc = strings.ToUpper(strings.TrimSpace(ifsc))
	if !fieldrules.PatternIFSC.MatchString(ifsc) {
		return nil, apperrors.ErrInvalidIFSC
	}

	var branch models.BankBranch
	if err := s.db.Where("ifsc = ?", ifsc).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIFSCNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &branch, nil
}
