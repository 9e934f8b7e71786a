package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/services"
)

// DocumentHandler handles supporting document requests.
type DocumentHandler struct {
	documentService services.DocumentServicer
	auditService    services.AuditServicer
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService services.DocumentServicer, auditService services.AuditServicer) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, auditService: auditService}
}

// UploadDocument attaches a supporting document to an asset.
// @Summary     Upload an asset document
// @Description Attach a PDF or image as the asset's supporting document
// @Tags        documents
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     int  true "Asset ID"
// @Param       file formData file true "Document file (PDF, JPG, PNG)"
// @Success     201 {object} models.AssetDocument "Document attached"
// @Failure     400 {object} ErrorResponse "Missing file or unsupported type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     409 {object} ErrorResponse "Asset already has a document"
// @Failure     413 {object} ErrorResponse "File too large"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/document [post]
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
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

	file, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	doc, err := h.documentService.Attach(userID, assetID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPLOAD_DOCUMENT", "asset_document", doc.ID, c.ClientIP(),
		map[string]interface{}{"asset_id": assetID, "file_name": doc.FileName, "size_bytes": doc.SizeBytes})

	respondCreated(c, "Document uploaded", doc)
}

// DownloadDocument streams the asset's document back under its original
// filename.
// @Summary     Download an asset document
// @Description Download the asset's supporting document
// @Tags        documents
// @Produce     application/octet-stream
// @Security    BearerAuth
// @Param       id path int true "Asset ID"
// @Success     200 {file} file "Document content"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset or document not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/document [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
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

	doc, path, err := h.documentService.Get(userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.FileAttachment(path, doc.FileName)
}

// DeleteDocument removes the asset's document.
// @Summary     Delete an asset document
// @Description Delete the asset's supporting document
// @Tags        documents
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Asset ID"
// @Success     200 {object} map[string]interface{} "Document deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset or document not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/document [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
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

	if err := h.documentService.Remove(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DOCUMENT", "asset", assetID, c.ClientIP(), nil)

	respondOK(c, "Document deleted", nil)
}
