package covers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coverhub/internal/events"
	"coverhub/pkg/cover"
)

// Publisher receives cover list changes. *events.Hub implements it.
type Publisher interface {
	Publish(ev events.CoverEvent)
}

type Handler struct {
	Repo   *Repo
	Events Publisher
}

func NewHandler(repo *Repo, pub Publisher) *Handler {
	return &Handler{Repo: repo, Events: pub}
}

// RegisterRoutes mounts the read routes on rg and the write routes on admin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("", h.list)          // GET /covers
	rg.GET("/random", h.random) // GET /covers/random
	rg.POST("", admin, h.add)
	rg.DELETE("/:id", admin, h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

func (h *Handler) random(c *gin.Context) {
	urls, err := h.Repo.URLs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	ref, ok := cover.NewSelector(urls).Pick()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no covers"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{
		"url":              ref,
		"background_image": cover.CSSURL(ref),
	})
}

type addReq struct {
	URL string `json:"url"`
}

func (h *Handler) add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	created, err := h.Repo.Add(c.Request.Context(), req.URL)
	switch {
	case errors.Is(err, ErrEmptyURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "url required"})
		return
	case errors.Is(err, ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "cover already exists"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.publish(events.CoverEvent{Type: events.TypeCoverAdded, ID: created.ID, URL: created.URL})
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	deleted, err := h.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	h.publish(events.CoverEvent{Type: events.TypeCoverDeleted, ID: id, URL: existing.URL})
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

func (h *Handler) publish(ev events.CoverEvent) {
	if h.Events != nil {
		h.Events.Publish(ev)
	}
}
