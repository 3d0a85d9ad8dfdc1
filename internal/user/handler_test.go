package user

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"monstermaker/internal/collection"
	"monstermaker/pkg/database"
)

func setup(t *testing.T) (*sql.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}

	h := &Handler{DB: db, JWTSecret: []byte("test-secret")}
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return db, r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterCreatesDefaultCollection(t *testing.T) {
	db, r := setup(t)

	w := post(r, "/auth/register", `{"username":"alice","password":"hunter22"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID == "" {
		t.Fatalf("bad response: %s", w.Body.String())
	}

	cols, err := collection.ListByOwner(db, resp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 1 || !cols[0].IsDefault || cols[0].Name != collection.DefaultName {
		t.Errorf("default collection missing after registration: %+v", cols)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, r := setup(t)
	post(r, "/auth/register", `{"username":"alice","password":"pw"}`)
	w := post(r, "/auth/register", `{"username":"alice","password":"pw"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, r := setup(t)
	w := post(r, "/auth/register", `{"username":"","password":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty register = %d, want 400", w.Code)
	}
}

func TestLogin(t *testing.T) {
	_, r := setup(t)
	post(r, "/auth/register", `{"username":"alice","password":"hunter22"}`)

	w := post(r, "/auth/login", `{"username":"alice","password":"hunter22"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d", w.Code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("no token in %s", w.Body.String())
	}

	if w := post(r, "/auth/login", `{"username":"alice","password":"wrong"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("bad password login = %d, want 401", w.Code)
	}
}
