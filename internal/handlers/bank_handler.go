package handlers

import (
	"github.com/gin-gonic/gin"

	"heirloom/internal/services"
)

// BankHandler handles IFSC directory lookups.
type BankHandler struct {
	directory services.BankDirectoryServicer
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(directory services.BankDirectoryServicer) *BankHandler {
	return &BankHandler{directory: directory}
}

// LookupIFSC resolves an IFSC code to its bank and branch.
// @Summary     Look up an IFSC code
// @Description Resolve an IFSC routing code to bank and branch details
// @Tags        banks
// @Produce     json
// @Security    BearerAuth
// @Param       code path string true "IFSC code"
// @Success     200 {object} models.BankBranch "Branch details"
// @Failure     400 {object} ErrorResponse "Invalid IFSC format"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No branch for this IFSC"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /banks/ifsc/{code} [get]
func (h *BankHandler) LookupIFSC(c *gin.Context) {
	branch, err := h.directory.Lookup(c.Param("code"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Branch retrieved", branch)
}
