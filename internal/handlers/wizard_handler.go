package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
	"heirloom/internal/services"
	"heirloom/internal/wizard"
)

// WizardHandler drives the multi-step asset creation flow: create the
// asset, attach nominees, upload a supporting document. Each step talks to
// the same services the flat endpoints use; the session only tracks where
// the client is and which asset the flow produced.
type WizardHandler struct {
	store           *wizard.Store
	assetService    services.AssetServicer
	nomineeService  services.NomineeServicer
	documentService services.DocumentServicer
	auditService    services.AuditServicer
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(store *wizard.Store, assetService services.AssetServicer, nomineeService services.NomineeServicer, documentService services.DocumentServicer, auditService services.AuditServicer) *WizardHandler {
	return &WizardHandler{
		store:           store,
		assetService:    assetService,
		nomineeService:  nomineeService,
		documentService: documentService,
		auditService:    auditService,
	}
}

// OpenWizardRequest represents the request payload for opening a wizard.
type OpenWizardRequest struct {
	Kind string `json:"kind" binding:"required,asset_kind"`
}

// WizardAssetRequest represents the step-one payload: the form fields of
// the asset being created.
type WizardAssetRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// WizardAssetResponse pairs the session with the asset step one produced.
type WizardAssetResponse struct {
	Session wizard.Session `json:"session"`
	Asset   *models.Asset  `json:"asset"`
}

// WizardNomineeResponse pairs the session with the assignment step two
// produced.
type WizardNomineeResponse struct {
	Session    wizard.Session            `json:"session"`
	Assignment *models.NomineeAssignment `json:"assignment"`
}

// WizardDocumentResponse pairs the closed session with the uploaded
// document.
type WizardDocumentResponse struct {
	Session  wizard.Session        `json:"session"`
	Document *models.AssetDocument `json:"document"`
}

// OpenWizard starts a new asset creation flow.
// @Summary     Open a wizard
// @Description Start a multi-step asset creation flow for the given kind
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body OpenWizardRequest true "Asset kind"
// @Success     201 {object} wizard.Session "Session opened in the entity-details step"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /wizard [post]
func (h *WizardHandler) OpenWizard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OpenWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sess := h.store.Open(userID, models.AssetKind(req.Kind))

	respondCreated(c, "Wizard opened", sess)
}

// GetWizard returns the current state of a wizard session.
// @Summary     Get a wizard session
// @Description Get the current step and bound asset of a wizard session
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Session ID"
// @Success     200 {object} wizard.Session "Session"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found or expired"
// @Router      /wizard/{id} [get]
func (h *WizardHandler) GetWizard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sess, err := h.store.Get(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, "Session retrieved", sess)
}

// SubmitAsset runs step one: create (or, on re-entry, update) the asset.
// The session only advances to the nominees step after the create succeeds;
// a validation failure leaves it in the entity-details step.
// @Summary     Submit the asset step
// @Description Create or update the wizard's asset and advance to the nominees step
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Session ID"
// @Param       request body WizardAssetRequest true "Asset form fields"
// @Success     200 {object} WizardAssetResponse "Asset bound, session in the nominees step"
// @Failure     400 {object} ErrorResponse "Validation failed (field-keyed errors)"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found or expired"
// @Failure     409 {object} ErrorResponse "Session is not in the entity-details step"
// @Router      /wizard/{id}/asset [post]
func (h *WizardHandler) SubmitAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Reserve the session so a concurrent submission cannot slip past the
	// step check and create a second asset while this one is in flight.
	sess, err := h.store.BeginSubmit(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer h.store.EndSubmit(userID, sess.ID)

	var req WizardAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var asset *models.Asset
	if sess.AssetID == 0 {
		asset, err = h.assetService.CreateAsset(userID, sess.Kind, req.Fields)
	} else {
		// Re-entered via Back: the asset already exists, so resubmission
		// updates it instead of creating a second one.
		asset, err = h.assetService.UpdateAsset(userID, sess.AssetID, req.Fields)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	sess, err = h.store.BindAsset(userID, sess.ID, asset.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "WIZARD_ASSET", "asset", asset.ID, c.ClientIP(),
		map[string]interface{}{"session_id": sess.ID, "kind": string(sess.Kind)})

	respondOK(c, "Asset saved", WizardAssetResponse{Session: sess, Asset: asset})
}

// AddNominee runs step two: assign one nominee to the wizard's asset. The
// session stays in the nominees step so more nominees can follow.
// @Summary     Add a nominee in the wizard
// @Description Assign a family member a share of the wizard's asset
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Session ID"
// @Param       request body AddNomineeRequest true "Nominee share"
// @Success     201 {object} WizardNomineeResponse "Nominee added"
// @Failure     400 {object} ErrorResponse "Invalid percentage or allocation exceeded"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found or expired"
// @Failure     409 {object} ErrorResponse "Duplicate nominee or wrong step"
// @Router      /wizard/{id}/nominees [post]
func (h *WizardHandler) AddNominee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sess, err := h.store.Get(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if sess.Step != wizard.StepNominees {
		respondWithError(c, apperrors.ErrWizardStep)
		return
	}

	var req AddNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assignment, err := h.nomineeService.AddNominee(userID, sess.AssetID, req.FamilyMemberID, req.Percentage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "WIZARD_NOMINEE", "nominee_assignment", assignment.ID, c.ClientIP(),
		map[string]interface{}{"session_id": sess.ID, "asset_id": sess.AssetID})

	respondCreated(c, "Nominee added", WizardNomineeResponse{Session: sess, Assignment: assignment})
}

// UploadDocument runs step three: attach the supporting document and close
// the flow.
// @Summary     Upload the wizard document
// @Description Attach the supporting document and finish the flow
// @Tags        wizard
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     string true "Session ID"
// @Param       file formData file   true "Document file (PDF, JPG, PNG)"
// @Success     201 {object} WizardDocumentResponse "Document attached, session closed"
// @Failure     400 {object} ErrorResponse "Missing file or unsupported type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found or expired"
// @Failure     409 {object} ErrorResponse "Session is not in the document step"
// @Failure     413 {object} ErrorResponse "File too large"
// @Router      /wizard/{id}/document [post]
func (h *WizardHandler) UploadDocument(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sess, err := h.store.Get(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if sess.Step != wizard.StepDocument {
		respondWithError(c, apperrors.ErrWizardStep)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	doc, err := h.documentService.Attach(userID, sess.AssetID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sess, err = h.store.Advance(userID, sess.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "WIZARD_DOCUMENT", "asset_document", doc.ID, c.ClientIP(),
		map[string]interface{}{"session_id": sess.ID, "asset_id": sess.AssetID})

	respondCreated(c, "Document uploaded", WizardDocumentResponse{Session: sess, Document: doc})
}

// Advance moves the session forward one step; leaving the document step
// closes the flow.
// @Summary     Advance the wizard
// @Description Move the session forward one step
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Session ID"
// @Success     200 {object} wizard.Session "Session after the move"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found or expired"
// @Failure     409 {object} ErrorResponse "No step to advance to"
// @Router      /wizard/{id}/advance [post]
func (h *WizardHandler) Advance(c *gin.Context) {
	h.transition(c, h.store.Advance, "Wizard advanced")
}

// Skip skips the current optional step.
// @Summary     Skip the current step
// @Description Skip the current optional step; skipping the document step closes the flow
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Session ID"
// @Success     200 {object} wizard.Session "Session after the skip"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found or expired"
// @Failure     409 {object} ErrorResponse "Current step cannot be skipped"
// @Router      /wizard/{id}/skip [post]
func (h *WizardHandler) Skip(c *gin.Context) {
	h.transition(c, h.store.Skip, "Step skipped")
}

// Back re-enters the previous step.
// @Summary     Go back a step
// @Description Re-enter the previous step without discarding saved data
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Session ID"
// @Success     200 {object} wizard.Session "Session after the move"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found or expired"
// @Failure     409 {object} ErrorResponse "No step to go back to"
// @Router      /wizard/{id}/back [post]
func (h *WizardHandler) Back(c *gin.Context) {
	h.transition(c, h.store.Back, "Went back a step")
}

// Cancel closes the session from any step. Assets and nominees already
// persisted stay untouched.
// @Summary     Cancel the wizard
// @Description Close the session; already-saved records are kept
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Session ID"
// @Success     200 {object} wizard.Session "Closed session"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found or expired"
// @Router      /wizard/{id}/cancel [post]
func (h *WizardHandler) Cancel(c *gin.Context) {
	h.transition(c, h.store.Cancel, "Wizard cancelled")
}

func (h *WizardHandler) transition(c *gin.Context, move func(uint, string) (wizard.Session, error), message string) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sess, err := move(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, message, sess)
}
