package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
	"heirloom/internal/pagination"
	"heirloom/internal/services"
)

// AssetHandler handles asset requests.
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, auditService: auditService}
}

// CreateAssetRequest represents the request payload for creating an asset.
// Fields carries the kind-specific form values as strings; the rule table of
// the kind decides which keys are required and how they are checked.
type CreateAssetRequest struct {
	Kind   string            `json:"kind" binding:"required,asset_kind"`
	Fields map[string]string `json:"fields" binding:"required"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
// The asset keeps its kind; the fields replace the kind-specific values.
type UpdateAssetRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// ListAssetsRequest holds the query parameters of the asset list endpoint.
type ListAssetsRequest struct {
	Kind string `form:"kind" binding:"required,asset_kind"`
	Q    string `form:"q"`
	pagination.PageRequest
	pagination.SortRequest
}

// CreateAsset creates a new asset of the given kind.
// @Summary     Create an asset
// @Description Create an asset; fields are validated against the kind's rule table
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset kind and form fields"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Validation failed (field-keyed errors)"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(userID, models.AssetKind(req.Kind), req.Fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ASSET", "asset", asset.ID, c.ClientIP(),
		map[string]interface{}{"kind": string(asset.Kind), "title": asset.Title})

	respondCreated(c, "Asset created", asset)
}

// ListAssets returns a paginated list of the user's assets of one kind.
// @Summary     List assets
// @Description List assets of one kind with pagination, sorting, and free-text search
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       kind      query string true  "Asset kind" Enums(bank_account, loan, deposit, insurance, stock, record)
// @Param       q         query string false "Free-text match on title and holder/institution names"
// @Param       sort_by   query string false "Sort column" Enums(created_at, updated_at, title)
// @Param       order     query string false "Sort order" Enums(asc, desc)
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListAssetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assets, err := h.assetService.GetUserAssets(userID, models.AssetKind(req.Kind), req.PageRequest, services.AssetListOptions{
		Sort:  req.SortRequest,
		Query: req.Q,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Assets retrieved", assets)
}

// GetAsset returns one asset with its nominees and document nested.
// @Summary     Get an asset
// @Description Get one asset by ID, including nominees and document
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
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

	asset, err := h.assetService.GetAssetByID(userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Asset retrieved", asset)
}

// UpdateAsset replaces the kind-specific fields of one asset.
// @Summary     Update an asset
// @Description Replace the asset's fields; the kind never changes
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Asset ID"
// @Param       request body UpdateAssetRequest true "Form fields"
// @Success     200 {object} models.Asset "Updated asset"
// @Failure     400 {object} ErrorResponse "Validation failed (field-keyed errors)"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
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

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.UpdateAsset(userID, assetID, req.Fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ASSET", "asset", asset.ID, c.ClientIP(),
		map[string]interface{}{"kind": string(asset.Kind)})

	respondOK(c, "Asset updated", asset)
}

// DeleteAsset removes one asset along with its nominee assignments and
// document.
// @Summary     Delete an asset
// @Description Delete one asset with its nominee assignments and document
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Asset ID"
// @Success     200 {object} map[string]interface{} "Asset deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
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

	if err := h.assetService.DeleteAsset(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ASSET", "asset", assetID, c.ClientIP(), nil)

	respondOK(c, "Asset deleted", nil)
}
