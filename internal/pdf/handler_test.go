package pdf

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"monstermaker/internal/auth"
	"monstermaker/pkg/database"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Ancient Red Dragon!": "Ancient_Red_Dragon_",
		"already-safe_Name":   "already-safe_Name",
		"a/b\\c":              "a_b_c",
		"":                    "",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
	// idempotence
	once := SanitizeFilename("Ancient Red Dragon!")
	if SanitizeFilename(once) != once {
		t.Errorf("sanitizing twice changed the result")
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func insertMonster(t *testing.T, db *sql.DB, id, ownerID, name string, public bool) {
	t.Helper()
	if _, err := db.Exec(
		`INSERT OR IGNORE INTO users(id, username, password_hash) VALUES(?,?,'x')`,
		ownerID, ownerID,
	); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(
		`INSERT INTO monsters(id, owner_id, name, is_public) VALUES(?,?,?,?)`,
		id, ownerID, name, public,
	); err != nil {
		t.Fatal(err)
	}
}

func newTestRouter(db *sql.DB, bridge *Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{DB: db, Bridge: bridge, InternalBaseURL: "http://app:8080"}
	r := gin.New()
	r.GET("/monsters/:id/pdf", auth.OptionalAuth([]byte("test-secret")), h.Download)
	return r
}

func TestDownloadEndToEnd(t *testing.T) {
	db := openTestDB(t)
	insertMonster(t, db, "42", "userA", "Ancient Red Dragon", true)

	var renderedURL string
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL string `json:"url"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		renderedURL = req.URL
		w.Write([]byte("%PDF-1.4 test"))
	}))
	defer svc.Close()

	r := newTestRouter(db, NewClient(svc.URL))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/monsters/42/pdf", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "MonsterMaker_Ancient_Red_Dragon.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if cl := w.Header().Get("Content-Length"); cl != "13" {
		t.Errorf("Content-Length = %q, want 13", cl)
	}
	if w.Body.Len() == 0 {
		t.Error("empty body")
	}
	if renderedURL != "http://app:8080/print/monsters/42" {
		t.Errorf("print URL = %q", renderedURL)
	}
}

func TestDownloadNotFound(t *testing.T) {
	db := openTestDB(t)
	r := newTestRouter(db, NewClient("http://localhost:0"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/monsters/9999/pdf", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Monster not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestDownloadPrivateMonsterForbidden(t *testing.T) {
	db := openTestDB(t)
	insertMonster(t, db, "m1", "userA", "Secret Lich", false)
	r := newTestRouter(db, NewClient("http://localhost:0"))

	// anonymous caller
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/monsters/m1/pdf", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Access denied" {
		t.Errorf("error = %q", body["error"])
	}

	// a different authenticated user
	token, err := auth.SignJWT([]byte("test-secret"), "userB", "userB", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/monsters/m1/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("other user status = %d, want 403", w.Code)
	}
}

func TestDownloadOwnerSeesPrivateMonster(t *testing.T) {
	db := openTestDB(t)
	insertMonster(t, db, "m1", "userA", "Secret Lich", false)

	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4"))
	}))
	defer svc.Close()
	r := newTestRouter(db, NewClient(svc.URL))

	token, err := auth.SignJWT([]byte("test-secret"), "userA", "userA", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/monsters/m1/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("owner status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestDownloadRenderFailureIsJSON(t *testing.T) {
	db := openTestDB(t)
	insertMonster(t, db, "m2", "userA", "Goblin", true)

	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Navigation timeout"}`))
	}))
	defer svc.Close()
	r := newTestRouter(db, NewClient(svc.URL))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/monsters/m2/pdf", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error response is not JSON: %v", err)
	}
	if !strings.Contains(body["error"], "Navigation timeout") {
		t.Errorf("error = %q", body["error"])
	}
}
