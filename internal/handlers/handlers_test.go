package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"heirloom/internal/models"
	"heirloom/internal/pagination"
	"heirloom/internal/services"
	"heirloom/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn        func(email string) (*models.User, error)
	getUserByIDFn           func(id uint) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	storeRefreshTokenHashFn func(userID uint, tokenHash string) error
	getRefreshTokenHashFn   func(userID uint) (string, error)
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID uint) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

type mockAssetService struct {
	createAssetFn   func(userID uint, kind models.AssetKind, form services.AssetForm) (*models.Asset, error)
	getUserAssetsFn func(userID uint, kind models.AssetKind, page pagination.PageRequest, opts services.AssetListOptions) (*pagination.PageResponse[models.Asset], error)
	getAssetByIDFn  func(userID, assetID uint) (*models.Asset, error)
	updateAssetFn   func(userID, assetID uint, form services.AssetForm) (*models.Asset, error)
	deleteAssetFn   func(userID, assetID uint) error
}

func (m *mockAssetService) CreateAsset(userID uint, kind models.AssetKind, form services.AssetForm) (*models.Asset, error) {
	if m.createAssetFn != nil {
		return m.createAssetFn(userID, kind, form)
	}
	return &models.Asset{Kind: kind}, nil
}

func (m *mockAssetService) GetUserAssets(userID uint, kind models.AssetKind, page pagination.PageRequest, opts services.AssetListOptions) (*pagination.PageResponse[models.Asset], error) {
	if m.getUserAssetsFn != nil {
		return m.getUserAssetsFn(userID, kind, page, opts)
	}
	return &pagination.PageResponse[models.Asset]{}, nil
}

func (m *mockAssetService) GetAssetByID(userID, assetID uint) (*models.Asset, error) {
	if m.getAssetByIDFn != nil {
		return m.getAssetByIDFn(userID, assetID)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) UpdateAsset(userID, assetID uint, form services.AssetForm) (*models.Asset, error) {
	if m.updateAssetFn != nil {
		return m.updateAssetFn(userID, assetID, form)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) DeleteAsset(userID, assetID uint) error {
	if m.deleteAssetFn != nil {
		return m.deleteAssetFn(userID, assetID)
	}
	return nil
}

type mockNomineeService struct {
	canAddNomineeFn    func(existing []models.NomineeAssignment, memberID uint, percentage int) error
	addNomineeFn       func(userID, assetID, memberID uint, percentage int) (*models.NomineeAssignment, error)
	getAssetNomineesFn func(userID, assetID uint) (*services.NomineeAllocation, error)
	updateNomineeFn    func(userID, assignmentID uint, percentage int) (*models.NomineeAssignment, error)
	removeNomineeFn    func(userID, assignmentID uint) error
	replaceNomineesFn  func(userID, assetID uint, shares []services.NomineeShare) ([]services.NomineeResult, error)
}

func (m *mockNomineeService) CanAddNominee(existing []models.NomineeAssignment, memberID uint, percentage int) error {
	if m.canAddNomineeFn != nil {
		return m.canAddNomineeFn(existing, memberID, percentage)
	}
	return nil
}

func (m *mockNomineeService) AddNominee(userID, assetID, memberID uint, percentage int) (*models.NomineeAssignment, error) {
	if m.addNomineeFn != nil {
		return m.addNomineeFn(userID, assetID, memberID, percentage)
	}
	return &models.NomineeAssignment{}, nil
}

func (m *mockNomineeService) GetAssetNominees(userID, assetID uint) (*services.NomineeAllocation, error) {
	if m.getAssetNomineesFn != nil {
		return m.getAssetNomineesFn(userID, assetID)
	}
	return &services.NomineeAllocation{Remaining: 100}, nil
}

func (m *mockNomineeService) UpdateNominee(userID, assignmentID uint, percentage int) (*models.NomineeAssignment, error) {
	if m.updateNomineeFn != nil {
		return m.updateNomineeFn(userID, assignmentID, percentage)
	}
	return &models.NomineeAssignment{}, nil
}

func (m *mockNomineeService) RemoveNominee(userID, assignmentID uint) error {
	if m.removeNomineeFn != nil {
		return m.removeNomineeFn(userID, assignmentID)
	}
	return nil
}

func (m *mockNomineeService) ReplaceNominees(userID, assetID uint, shares []services.NomineeShare) ([]services.NomineeResult, error) {
	if m.replaceNomineesFn != nil {
		return m.replaceNomineesFn(userID, assetID, shares)
	}
	return nil, nil
}

type mockFamilyService struct {
	createFamilyMemberFn  func(userID uint, fields services.FamilyMemberFields) (*models.FamilyMember, error)
	getFamilyMembersFn    func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error)
	getFamilyMemberByIDFn func(userID, memberID uint) (*models.FamilyMember, error)
	updateFamilyMemberFn  func(userID, memberID uint, fields services.FamilyMemberFields) (*models.FamilyMember, error)
	deleteFamilyMemberFn  func(userID, memberID uint) error
}

func (m *mockFamilyService) CreateFamilyMember(userID uint, fields services.FamilyMemberFields) (*models.FamilyMember, error) {
	if m.createFamilyMemberFn != nil {
		return m.createFamilyMemberFn(userID, fields)
	}
	return &models.FamilyMember{}, nil
}

func (m *mockFamilyService) GetFamilyMembers(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error) {
	if m.getFamilyMembersFn != nil {
		return m.getFamilyMembersFn(userID, page)
	}
	return &pagination.PageResponse[models.FamilyMember]{}, nil
}

func (m *mockFamilyService) GetFamilyMemberByID(userID, memberID uint) (*models.FamilyMember, error) {
	if m.getFamilyMemberByIDFn != nil {
		return m.getFamilyMemberByIDFn(userID, memberID)
	}
	return &models.FamilyMember{}, nil
}

func (m *mockFamilyService) UpdateFamilyMember(userID, memberID uint, fields services.FamilyMemberFields) (*models.FamilyMember, error) {
	if m.updateFamilyMemberFn != nil {
		return m.updateFamilyMemberFn(userID, memberID, fields)
	}
	return &models.FamilyMember{}, nil
}

func (m *mockFamilyService) DeleteFamilyMember(userID, memberID uint) error {
	if m.deleteFamilyMemberFn != nil {
		return m.deleteFamilyMemberFn(userID, memberID)
	}
	return nil
}

type mockDocumentService struct {
	attachFn func(userID, assetID uint, file *multipart.FileHeader) (*models.AssetDocument, error)
	getFn    func(userID, assetID uint) (*models.AssetDocument, string, error)
	removeFn func(userID, assetID uint) error
}

func (m *mockDocumentService) Attach(userID, assetID uint, file *multipart.FileHeader) (*models.AssetDocument, error) {
	if m.attachFn != nil {
		return m.attachFn(userID, assetID, file)
	}
	return &models.AssetDocument{}, nil
}

func (m *mockDocumentService) Get(userID, assetID uint) (*models.AssetDocument, string, error) {
	if m.getFn != nil {
		return m.getFn(userID, assetID)
	}
	return &models.AssetDocument{}, "", nil
}

func (m *mockDocumentService) Remove(userID, assetID uint) error {
	if m.removeFn != nil {
		return m.removeFn(userID, assetID)
	}
	return nil
}

type mockAuditService struct{}

func (m *mockAuditService) Log(_ uint, _, _ string, _ uint, _ string, _ map[string]interface{}) {}

var (
	_ services.UserServicer     = (*mockUserService)(nil)
	_ services.AssetServicer    = (*mockAssetService)(nil)
	_ services.NomineeServicer  = (*mockNomineeService)(nil)
	_ services.FamilyServicer   = (*mockFamilyService)(nil)
	_ services.DocumentServicer = (*mockDocumentService)(nil)
	_ services.AuditServicer    = (*mockAuditService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// dataField unwraps the data payload of a success envelope.
func dataField(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object in response, got: %v", result)
	}
	return data
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["status"] != false {
		t.Errorf("expected status false, got %v", result["status"])
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %q", code, result["code"])
	}
}
