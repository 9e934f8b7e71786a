package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/fieldrules"
	"heirloom/internal/models"
	"heirloom/internal/services"
)

// ProfileHandler handles profile and address requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// UpdateProfileRequest represents the request payload for updating the
// profile. Absent fields leave the stored value untouched.
type UpdateProfileRequest struct {
	FullName       *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	DateOfBirth    *string `json:"date_of_birth"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=male female other"`
	NationalID     *string `json:"national_id" binding:"omitempty,aadhaar"`
	TaxID          *string `json:"tax_id" binding:"omitempty,pan"`
	Phone          *string `json:"phone" binding:"omitempty,in_phone"`
	AlternatePhone *string `json:"alternate_phone" binding:"omitempty,in_phone"`
}

// AddressRequest represents the request payload for creating or replacing an
// address.
type AddressRequest struct {
	Kind    string `json:"kind" binding:"omitempty,address_kind"`
	Line1   string `json:"line1" binding:"required,max=200"`
	Line2   string `json:"line2" binding:"max=200"`
	City    string `json:"city" binding:"required,max=100"`
	State   string `json:"state" binding:"required,max=100"`
	Pincode string `json:"pincode" binding:"required,pincode"`
}

// GetProfile returns the authenticated user's profile.
// @Summary     Get profile
// @Description Get the authenticated user's profile
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Profile "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Profile retrieved", profile)
}

// UpdateProfile applies a partial update to the authenticated user's profile.
// @Summary     Update profile
// @Description Update profile fields; absent fields are left untouched
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} models.Profile "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.ProfileFields{
		FullName:       req.FullName,
		Gender:         req.Gender,
		NationalID:     req.NationalID,
		TaxID:          req.TaxID,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
	}
	if req.DateOfBirth != nil {
		dob, parseErr := fieldrules.ParseDate(*req.DateOfBirth)
		if parseErr != nil || dob == nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date_of_birth format"))
			return
		}
		fields.DateOfBirth = dob
	}

	profile, err := h.profileService.UpdateProfile(userID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PROFILE", "profile", profile.ID, c.ClientIP(), nil)

	respondOK(c, "Profile updated", profile)
}

// ListAddresses returns all addresses of the authenticated user.
// @Summary     List addresses
// @Description List all addresses of the authenticated user
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Address "Addresses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/addresses [get]
func (h *ProfileHandler) ListAddresses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	addresses, err := h.profileService.GetAddresses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Addresses retrieved", addresses)
}

// AddAddress creates a new address for the authenticated user.
// @Summary     Add an address
// @Description Create a new address for the authenticated user
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddressRequest true "Address details"
// @Success     201 {object} models.Address "Address created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/addresses [post]
func (h *ProfileHandler) AddAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	address, err := h.profileService.AddAddress(userID, addressFields(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ADDRESS", "address", address.ID, c.ClientIP(),
		map[string]interface{}{"kind": string(address.Kind), "city": address.City})

	respondCreated(c, "Address added", address)
}

// UpdateAddress replaces one address of the authenticated user.
// @Summary     Update an address
// @Description Replace the attributes of one address
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Address ID"
// @Param       request body AddressRequest true "Address details"
// @Success     200 {object} models.Address "Updated address"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Address not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/addresses/{id} [put]
func (h *ProfileHandler) UpdateAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	addressID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	address, err := h.profileService.UpdateAddress(userID, addressID, addressFields(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ADDRESS", "address", address.ID, c.ClientIP(), nil)

	respondOK(c, "Address updated", address)
}

// DeleteAddress removes one address of the authenticated user.
// @Summary     Delete an address
// @Description Delete one address of the authenticated user
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Address ID"
// @Success     200 {object} map[string]interface{} "Address deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Address not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/addresses/{id} [delete]
func (h *ProfileHandler) DeleteAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	addressID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.profileService.DeleteAddress(userID, addressID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ADDRESS", "address", addressID, c.ClientIP(), nil)

	respondOK(c, "Address deleted", nil)
}

func addressFields(req AddressRequest) services.AddressFields {
	return services.AddressFields{
		Kind:    models.AddressKind(req.Kind),
		Line1:   req.Line1,
		Line2:   req.Line2,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
	}
}
