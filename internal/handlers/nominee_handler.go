package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
	"heirloom/internal/services"
)

// NomineeHandler handles nominee assignment requests.
type NomineeHandler struct {
	nomineeService services.NomineeServicer
	auditService   services.AuditServicer
}

// NewNomineeHandler creates a new NomineeHandler.
func NewNomineeHandler(nomineeService services.NomineeServicer, auditService services.AuditServicer) *NomineeHandler {
	return &NomineeHandler{nomineeService: nomineeService, auditService: auditService}
}

// AddNomineeRequest represents the request payload for adding one nominee.
type AddNomineeRequest struct {
	FamilyMemberID uint `json:"family_member_id" binding:"required"`
	Percentage     int  `json:"percentage" binding:"required,min=1,max=100"`
}

// UpdateNomineeRequest represents the request payload for changing one
// nominee's percentage.
type UpdateNomineeRequest struct {
	Percentage int `json:"percentage" binding:"required,min=1,max=100"`
}

// ReplaceNomineesRequest represents the request payload for the batch
// replacement of an asset's nominee set.
type ReplaceNomineesRequest struct {
	Nominees []services.NomineeShare `json:"nominees" binding:"required"`
}

// NomineeItemResult reports the outcome of one item of a batch replace.
type NomineeItemResult struct {
	FamilyMemberID uint                      `json:"family_member_id"`
	Percentage     int                       `json:"percentage"`
	Accepted       bool                      `json:"accepted"`
	Error          string                    `json:"error,omitempty"`
	Assignment     *models.NomineeAssignment `json:"assignment,omitempty"`
}

// AddNominee assigns a family member as a nominee on an asset.
// @Summary     Add a nominee
// @Description Assign a family member a percentage share of an asset
// @Tags        nominees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Asset ID"
// @Param       request body AddNomineeRequest true "Nominee share"
// @Success     201 {object} models.NomineeAssignment "Nominee added"
// @Failure     400 {object} ErrorResponse "Invalid percentage or allocation exceeded"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset or family member not found"
// @Failure     409 {object} ErrorResponse "Duplicate nominee"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/nominees [post]
func (h *NomineeHandler) AddNominee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assignment, err := h.nomineeService.AddNominee(userID, assetID, req.FamilyMemberID, req.Percentage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_NOMINEE", "nominee_assignment", assignment.ID, c.ClientIP(),
		map[string]interface{}{"asset_id": assetID, "family_member_id": req.FamilyMemberID, "percentage": req.Percentage})

	respondCreated(c, "Nominee added", assignment)
}

// GetAssetNominees lists the nominees of an asset with the allocation
// summary.
// @Summary     List asset nominees
// @Description List nominee assignments of an asset with total and remaining allocation
// @Tags        nominees
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Asset ID"
// @Success     200 {object} services.NomineeAllocation "Allocation state"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/nominees [get]
func (h *NomineeHandler) GetAssetNominees(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocation, err := h.nomineeService.GetAssetNominees(userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Nominees retrieved", allocation)
}

// ReplaceNominees replaces the nominee set of an asset. Items are applied
// independently; the response reports each item's outcome and the overall
// allocation stays capped.
// @Summary     Replace asset nominees
// @Description Replace the nominee set; items succeed or fail independently
// @Tags        nominees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                    true "Asset ID"
// @Param       request body ReplaceNomineesRequest true "Nominee shares"
// @Success     200 {array} NomineeItemResult "Per-item outcomes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/nominees [put]
func (h *NomineeHandler) ReplaceNominees(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReplaceNomineesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	results, err := h.nomineeService.ReplaceNominees(userID, assetID, req.Nominees)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]NomineeItemResult, 0, len(results))
	for _, r := range results {
		item := NomineeItemResult{
			FamilyMemberID: r.FamilyMemberID,
			Percentage:     r.Percentage,
			Accepted:       r.Err == nil,
			Assignment:     r.Assignment,
		}
		if r.Err != nil {
			var appErr *apperrors.AppError
			if errors.As(r.Err, &appErr) {
				item.Error = appErr.Message
			} else {
				item.Error = apperrors.ErrInternalServer.Message
			}
		}
		items = append(items, item)
	}

	h.auditService.Log(userID, "REPLACE_NOMINEES", "asset", assetID, c.ClientIP(),
		map[string]interface{}{"requested": len(req.Nominees)})

	respondOK(c, "Nominees replaced", items)
}

// UpdateNominee changes the percentage of one assignment.
// @Summary     Update a nominee share
// @Description Change the percentage of one nominee assignment
// @Tags        nominees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Assignment ID"
// @Param       request body UpdateNomineeRequest true "New percentage"
// @Success     200 {object} models.NomineeAssignment "Updated assignment"
// @Failure     400 {object} ErrorResponse "Invalid percentage or allocation exceeded"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Assignment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /nominees/{id} [put]
func (h *NomineeHandler) UpdateNominee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assignmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assignment, err := h.nomineeService.UpdateNominee(userID, assignmentID, req.Percentage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_NOMINEE", "nominee_assignment", assignment.ID, c.ClientIP(),
		map[string]interface{}{"percentage": req.Percentage})

	respondOK(c, "Nominee updated", assignment)
}

// RemoveNominee deletes one assignment.
// @Summary     Remove a nominee
// @Description Delete one nominee assignment
// @Tags        nominees
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Assignment ID"
// @Success     200 {object} map[string]interface{} "Nominee removed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Assignment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /nominees/{id} [delete]
func (h *NomineeHandler) RemoveNominee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assignmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.nomineeService.RemoveNominee(userID, assignmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REMOVE_NOMINEE", "nominee_assignment", assignmentID, c.ClientIP(), nil)

	respondOK(c, "Nominee removed", nil)
}
