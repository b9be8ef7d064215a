package covers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"coverhub/internal/events"
	"coverhub/pkg/cover"
	"coverhub/pkg/database"
	"coverhub/pkg/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := database.OpenMigrated(database.Config{Path: filepath.Join(t.TempDir(), "covers.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepo(db)
}

type recorder struct {
	events []events.CoverEvent
}

func (r *recorder) Publish(ev events.CoverEvent) {
	r.events = append(r.events, ev)
}

// allowHeader stands in for the JWT middleware.
func allowHeader(c *gin.Context) {
	if c.GetHeader("X-Admin") != "yes" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	c.Next()
}

func newTestRouter(t *testing.T) (*gin.Engine, *Repo, *recorder) {
	gin.SetMode(gin.TestMode)
	repo := newTestRepo(t)
	rec := &recorder{}
	router := gin.New()
	NewHandler(repo, rec).RegisterRoutes(router.Group("/covers"), allowHeader)
	return router, repo, rec
}

func serve(router http.Handler, method, path string, admin bool, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("X-Admin", "yes")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRepoAddKeepsOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, u := range []string{"/c/b.jpg", "/c/a.jpg", "  /c/c.jpg "} {
		if _, err := repo.Add(ctx, u); err != nil {
			t.Fatalf("Add(%s): %v", u, err)
		}
	}

	urls, err := repo.URLs(ctx)
	if err != nil {
		t.Fatalf("URLs: %v", err)
	}
	want := cover.List{"/c/b.jpg", "/c/a.jpg", "/c/c.jpg"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("Expected %v, got %v", want, urls)
	}

	if _, err := repo.Add(ctx, "/c/a.jpg"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
	if _, err := repo.Add(ctx, "   "); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("Expected ErrEmptyURL, got %v", err)
	}
}

func TestRepoReplace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if _, err := repo.Add(ctx, "/old.jpg"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	n, err := repo.Replace(ctx, cover.List{"/x.jpg", "", "/y.jpg", "/x.jpg"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 stored covers, got %d", n)
	}

	urls, _ := repo.URLs(ctx)
	if !reflect.DeepEqual(urls, cover.List{"/x.jpg", "/y.jpg"}) {
		t.Errorf("Unexpected list %v", urls)
	}
	if total, _ := repo.Count(ctx); total != 2 {
		t.Errorf("Expected count 2, got %d", total)
	}
}

func TestRepoDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	c, err := repo.Add(ctx, "/x.jpg")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	deleted, err := repo.Delete(ctx, c.ID)
	if err != nil || !deleted {
		t.Fatalf("Expected delete, got %v %v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, c.ID)
	if err != nil || deleted {
		t.Errorf("Expected second delete to report false, got %v %v", deleted, err)
	}
	if got, _ := repo.GetByID(ctx, c.ID); got != nil {
		t.Errorf("Expected nil after delete, got %+v", got)
	}
}

func TestRandomEndpoint(t *testing.T) {
	router, repo, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/covers/random", false, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on empty list, got %d", w.Code)
	}

	if _, err := repo.Add(context.Background(), "x.png"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	w = serve(router, http.MethodGet, "/covers/random", false, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp struct {
		URL             string `json:"url"`
		BackgroundImage string `json:"background_image"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.URL != "x.png" || resp.BackgroundImage != "url(x.png)" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestAddAndDeleteEndpoints(t *testing.T) {
	router, _, rec := newTestRouter(t)

	if w := serve(router, http.MethodPost, "/covers", false, map[string]string{"url": "/a.jpg"}); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without admin, got %d", w.Code)
	}

	w := serve(router, http.MethodPost, "/covers", true, map[string]string{"url": "/a.jpg"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Cover
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if w := serve(router, http.MethodPost, "/covers", true, map[string]string{"url": "/a.jpg"}); w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate, got %d", w.Code)
	}
	if w := serve(router, http.MethodPost, "/covers", true, map[string]string{"url": ""}); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank url, got %d", w.Code)
	}

	w = serve(router, http.MethodGet, "/covers", false, nil)
	var listed struct {
		Total int            `json:"total"`
		Items []models.Cover `json:"items"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &listed)
	if listed.Total != 1 || len(listed.Items) != 1 || listed.Items[0].URL != "/a.jpg" {
		t.Errorf("Unexpected list %+v", listed)
	}

	if w := serve(router, http.MethodDelete, "/covers/"+created.ID, true, nil); w.Code != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d", w.Code)
	}
	if w := serve(router, http.MethodDelete, "/covers/"+created.ID, true, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", w.Code)
	}

	if len(rec.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(rec.events))
	}
	if rec.events[0].Type != events.TypeCoverAdded || rec.events[1].Type != events.TypeCoverDeleted {
		t.Errorf("Unexpected events %+v", rec.events)
	}
}
