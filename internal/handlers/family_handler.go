package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/fieldrules"
	"heirloom/internal/pagination"
	"heirloom/internal/services"
)

// FamilyHandler handles family member requests.
type FamilyHandler struct {
	familyService services.FamilyServicer
	auditService  services.AuditServicer
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(familyService services.FamilyServicer, auditService services.AuditServicer) *FamilyHandler {
	return &FamilyHandler{familyService: familyService, auditService: auditService}
}

// FamilyMemberRequest represents the request payload for creating or
// replacing a family member.
type FamilyMemberRequest struct {
	FullName    string  `json:"full_name" binding:"required,min=1,max=200"`
	Relation    string  `json:"relation" binding:"required,relation"`
	Email       string  `json:"email" binding:"omitempty,email,max=255"`
	Phone       string  `json:"phone" binding:"omitempty,in_phone"`
	DateOfBirth *string `json:"date_of_birth"`
}

func (r FamilyMemberRequest) fields() (services.FamilyMemberFields, error) {
	fields := services.FamilyMemberFields{
		FullName: r.FullName,
		Relation: r.Relation,
		Email:    r.Email,
		Phone:    r.Phone,
	}
	if r.DateOfBirth != nil && *r.DateOfBirth != "" {
		dob, err := fieldrules.ParseDate(*r.DateOfBirth)
		if err != nil {
			return fields, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date_of_birth format")
		}
		fields.DateOfBirth = dob
	}
	return fields, nil
}

// CreateFamilyMember registers a new family member.
// @Summary     Create a family member
// @Description Register a person the user can later nominate on assets
// @Tags        family-members
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FamilyMemberRequest true "Family member details"
// @Success     201 {object} models.FamilyMember "Family member created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family-members [post]
func (h *FamilyHandler) CreateFamilyMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields, err := req.fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	member, err := h.familyService.CreateFamilyMember(userID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FAMILY_MEMBER", "family_member", member.ID, c.ClientIP(),
		map[string]interface{}{"relation": member.Relation})

	respondCreated(c, "Family member created", member)
}

// ListFamilyMembers returns a paginated list of the user's family members.
// @Summary     List family members
// @Description List the authenticated user's family members
// @Tags        family-members
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.FamilyMember] "Family members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family-members [get]
func (h *FamilyHandler) ListFamilyMembers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	members, err := h.familyService.GetFamilyMembers(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Family members retrieved", members)
}

// GetFamilyMember returns one family member.
// @Summary     Get a family member
// @Description Get one family member by ID
// @Tags        family-members
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Family member ID"
// @Success     200 {object} models.FamilyMember "Family member"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Family member not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family-members/{id} [get]
func (h *FamilyHandler) GetFamilyMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	memberID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	member, err := h.familyService.GetFamilyMemberByID(userID, memberID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Family member retrieved", member)
}

// UpdateFamilyMember replaces the attributes of one family member.
// @Summary     Update a family member
// @Description Replace the attributes of one family member
// @Tags        family-members
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Family member ID"
// @Param       request body FamilyMemberRequest true "Family member details"
// @Success     200 {object} models.FamilyMember "Updated family member"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Family member not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family-members/{id} [put]
func (h *FamilyHandler) UpdateFamilyMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	memberID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields, err := req.fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	member, err := h.familyService.UpdateFamilyMember(userID, memberID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FAMILY_MEMBER", "family_member", member.ID, c.ClientIP(), nil)

	respondOK(c, "Family member updated", member)
}

// DeleteFamilyMember removes a family member. Members who are nominated on
// existing assets cannot be removed.
// @Summary     Delete a family member
// @Description Delete a family member who has no nominee assignments
// @Tags        family-members
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Family member ID"
// @Success     200 {object} map[string]interface{} "Family member deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Family member not found"
// @Failure     409 {object} ErrorResponse "Family member is a nominee on existing assets"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family-members/{id} [delete]
func (h *FamilyHandler) DeleteFamilyMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	memberID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.familyService.DeleteFamilyMember(userID, memberID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FAMILY_MEMBER", "family_member", memberID, c.ClientIP(), nil)

	respondOK(c, "Family member deleted", nil)
}
