package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
	"heirloom/internal/pagination"
	"heirloom/internal/services"
)

func setupAssetRouter(handler *AssetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", injectUserID(1))
	auth.POST("/assets", handler.CreateAsset)
	auth.GET("/assets", handler.ListAssets)
	auth.GET("/assets/:id", handler.GetAsset)
	auth.PUT("/assets/:id", handler.UpdateAsset)
	auth.DELETE("/assets/:id", handler.DeleteAsset)
	return r
}

func TestAssetHandler_CreateAsset(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		assetSvc := &mockAssetService{
			createAssetFn: func(userID uint, kind models.AssetKind, form services.AssetForm) (*models.Asset, error) {
				if userID != 1 {
					t.Errorf("expected user 1, got %d", userID)
				}
				if form["record_type"] != "will" {
					t.Errorf("expected record_type forwarded, got %q", form["record_type"])
				}
				return &models.Asset{Base: models.Base{ID: 10}, UserID: userID, Kind: kind, Title: "will"}, nil
			},
		}
		handler := NewAssetHandler(assetSvc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "POST", "/assets", `{"kind":"record","fields":{"record_type":"will"}}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, parseJSON(t, rec))
		if data["kind"] != "record" {
			t.Errorf("expected kind record, got %v", data["kind"])
		}
	})

	t.Run("returns 400 on unknown kind", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "POST", "/assets", `{"kind":"commodity","fields":{}}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 with field errors on validation failure", func(t *testing.T) {
		assetSvc := &mockAssetService{
			createAssetFn: func(_ uint, _ models.AssetKind, _ services.AssetForm) (*models.Asset, error) {
				return nil, apperrors.WithFields(apperrors.ErrValidation, map[string]string{
					"ifsc_code": "Invalid IFSC code",
				})
			},
		}
		handler := NewAssetHandler(assetSvc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "POST", "/assets", `{"kind":"bank_account","fields":{"ifsc_code":"nope"}}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "VALIDATION_FAILED")
		fieldErrs, ok := result["errors"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected field errors in response, got: %v", result)
		}
		if fieldErrs["ifsc_code"] != "Invalid IFSC code" {
			t.Errorf("expected ifsc_code error, got %v", fieldErrs["ifsc_code"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/assets", handler.CreateAsset)

		rec := doRequest(r, "POST", "/assets", `{"kind":"record","fields":{}}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAssetHandler_ListAssets(t *testing.T) {
	t.Run("returns 200 with query knobs forwarded", func(t *testing.T) {
		assetSvc := &mockAssetService{
			getUserAssetsFn: func(_ uint, kind models.AssetKind, page pagination.PageRequest, opts services.AssetListOptions) (*pagination.PageResponse[models.Asset], error) {
				if kind != models.AssetKindBankAccount {
					t.Errorf("expected bank_account kind, got %s", kind)
				}
				if page.Page != 2 || page.PageSize != 5 {
					t.Errorf("expected page 2 size 5, got %d/%d", page.Page, page.PageSize)
				}
				if opts.Query != "hdfc" || opts.Sort.SortBy != "title" {
					t.Errorf("unexpected list options: %+v", opts)
				}
				return &pagination.PageResponse[models.Asset]{Page: 2, PageSize: 5}, nil
			},
		}
		handler := NewAssetHandler(assetSvc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets?kind=bank_account&q=hdfc&sort_by=title&order=asc&page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 without kind", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown kind", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets?kind=crypto", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAssetHandler_GetAsset(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		assetSvc := &mockAssetService{
			getAssetByIDFn: func(_, assetID uint) (*models.Asset, error) {
				return &models.Asset{Base: models.Base{ID: assetID}, Kind: models.AssetKindStock, Title: "Zerodha holdings"}, nil
			},
		}
		handler := NewAssetHandler(assetSvc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets/10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, parseJSON(t, rec))
		if data["title"] != "Zerodha holdings" {
			t.Errorf("expected title, got %v", data["title"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		assetSvc := &mockAssetService{
			getAssetByIDFn: func(_, _ uint) (*models.Asset, error) {
				return nil, apperrors.ErrAssetNotFound
			},
		}
		handler := NewAssetHandler(assetSvc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ASSET_NOT_FOUND")
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAssetHandler_UpdateAsset(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		assetSvc := &mockAssetService{
			updateAssetFn: func(_, assetID uint, form services.AssetForm) (*models.Asset, error) {
				return &models.Asset{Base: models.Base{ID: assetID}, Kind: models.AssetKindRecord, RecordType: form["record_type"]}, nil
			},
		}
		handler := NewAssetHandler(assetSvc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "PUT", "/assets/10", `{"fields":{"record_type":"deed"}}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 without fields", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "PUT", "/assets/10", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAssetHandler_DeleteAsset(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deleted uint
		assetSvc := &mockAssetService{
			deleteAssetFn: func(_, assetID uint) error {
				deleted = assetID
				return nil
			},
		}
		handler := NewAssetHandler(assetSvc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "DELETE", "/assets/10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if deleted != 10 {
			t.Errorf("expected asset 10 deleted, got %d", deleted)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		assetSvc := &mockAssetService{
			deleteAssetFn: func(_, _ uint) error { return apperrors.ErrAssetNotFound },
		}
		handler := NewAssetHandler(assetSvc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "DELETE", "/assets/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
