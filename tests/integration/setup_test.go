package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"heirloom/internal/handlers"
	"heirloom/internal/logger"
	"heirloom/internal/middleware"
	"heirloom/internal/models"
	"heirloom/internal/services"
	"heirloom/internal/validator"
	"heirloom/internal/wizard"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Store  *wizard.Store
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Address{},
		&models.FamilyMember{},
		&models.Asset{},
		&models.NomineeAssignment{},
		&models.AssetDocument{},
		&models.BankBranch{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)
	familyService := services.NewFamilyService(db)
	bankDirectory := services.NewBankDirectoryService(db)
	assetService := services.NewAssetService(db, bankDirectory)
	nomineeService := services.NewNomineeService(db)
	documentService := services.NewDocumentService(db, t.TempDir(), 5<<20)
	auditService := services.NewAuditService(db)

	wizardStore := wizard.NewStore(30 * time.Minute)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	familyHandler := handlers.NewFamilyHandler(familyService, auditService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService)
	nomineeHandler := handlers.NewNomineeHandler(nomineeService, auditService)
	documentHandler := handlers.NewDocumentHandler(documentService, auditService)
	wizardHandler := handlers.NewWizardHandler(wizardStore, assetService, nomineeService, documentService, auditService)
	bankHandler := handlers.NewBankHandler(bankDirectory)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	profile := protected.Group("/profile")
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.GET("/addresses", profileHandler.ListAddresses)
	profile.POST("/addresses", profileHandler.AddAddress)
	profile.PUT("/addresses/:id", profileHandler.UpdateAddress)
	profile.DELETE("/addresses/:id", profileHandler.DeleteAddress)

	family := protected.Group("/family-members")
	family.POST("", familyHandler.CreateFamilyMember)
	family.GET("", familyHandler.ListFamilyMembers)
	family.GET("/:id", familyHandler.GetFamilyMember)
	family.PUT("/:id", familyHandler.UpdateFamilyMember)
	family.DELETE("/:id", familyHandler.DeleteFamilyMember)

	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.POST("/:id/nominees", nomineeHandler.AddNominee)
	assets.GET("/:id/nominees", nomineeHandler.GetAssetNominees)
	assets.PUT("/:id/nominees", nomineeHandler.ReplaceNominees)
	assets.POST("/:id/document", documentHandler.UploadDocument)
	assets.GET("/:id/document", documentHandler.DownloadDocument)
	assets.DELETE("/:id/document", documentHandler.DeleteDocument)

	nominees := protected.Group("/nominees")
	nominees.PUT("/:id", nomineeHandler.UpdateNominee)
	nominees.DELETE("/:id", nomineeHandler.RemoveNominee)

	wiz := protected.Group("/wizard")
	wiz.POST("", wizardHandler.OpenWizard)
	wiz.GET("/:id", wizardHandler.GetWizard)
	wiz.POST("/:id/asset", wizardHandler.SubmitAsset)
	wiz.POST("/:id/nominees", wizardHandler.AddNominee)
	wiz.POST("/:id/document", wizardHandler.UploadDocument)
	wiz.POST("/:id/advance", wizardHandler.Advance)
	wiz.POST("/:id/skip", wizardHandler.Skip)
	wiz.POST("/:id/back", wizardHandler.Back)
	wiz.POST("/:id/cancel", wizardHandler.Cancel)

	banks := protected.Group("/banks")
	banks.GET("/ifsc/:code", bankHandler.LookupIFSC)

	return &testApp{DB: db, Store: wizardStore, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// data unwraps the data payload of a success envelope.
func data(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got: %v", result)
	}
	return d
}

// jsonNum renders a JSON-decoded number as its integer path/body form.
func jsonNum(n float64) string {
	return fmt.Sprintf("%d", int64(n))
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	d := data(t, parseJSON(t, rec))
	user := d["user"].(map[string]interface{})
	return d["access_token"].(string), d["refresh_token"].(string), user["id"].(float64)
}

// seedBankBranch inserts an IFSC directory entry the way migrations seed it.
func (app *testApp) seedBankBranch(t *testing.T, ifsc, bank, branch string) {
	t.Helper()
	row := &models.BankBranch{IFSC: ifsc, BankName: bank, BranchName: branch, City: "Mumbai", State: "Maharashtra"}
	if err := app.DB.Create(row).Error; err != nil {
		t.Fatalf("failed to seed bank branch: %v", err)
	}
}

// createFamilyMember creates a family member over the API and returns its ID.
func (app *testApp) createFamilyMember(t *testing.T, token, name, relation string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"full_name":%q,"relation":%q}`, name, relation)
	rec := app.request("POST", "/api/v1/family-members", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create family member failed: %d %s", rec.Code, rec.Body.String())
	}
	return data(t, parseJSON(t, rec))["id"].(float64)
}
