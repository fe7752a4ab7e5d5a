package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ramcivil/monitoring-service/internal/auth"
	"github.com/ramcivil/monitoring-service/internal/blob"
	"github.com/ramcivil/monitoring-service/internal/http/middleware"
	"github.com/ramcivil/monitoring-service/internal/model"
	"github.com/ramcivil/monitoring-service/internal/report"
	"github.com/ramcivil/monitoring-service/internal/repository"
	"github.com/ramcivil/monitoring-service/internal/service"
)

type Handler struct {
	collections *service.CollectionService
	reports     *service.ReportService
	blobs       *blob.Store
	feed        *auth.RoleFeed
	maxUpload   int64
	upgrader    websocket.Upgrader
	log         zerolog.Logger
}

func NewHandler(
	collections *service.CollectionService,
	reports *service.ReportService,
	blobs *blob.Store,
	feed *auth.RoleFeed,
	maxUpload int64,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		collections: collections,
		reports:     reports,
		blobs:       blobs,
		feed:        feed,
		maxUpload:   maxUpload,
		upgrader:    websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		log:         log,
	}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", h.healthz)
	router.GET("/ws/roles", h.roleFeed)

	api := router.Group("/api")
	for _, name := range repository.Collections {
		group := api.Group("/" + name)
		group.GET("", h.listOrGet(name))
		group.POST("", h.create(name))
		group.PUT("", h.update(name))
		group.DELETE("", h.remove(name))
	}

	api.GET("/status", h.status)
	api.GET("/dashboard/stats", h.dashboardStats)
	api.POST("/report", h.reportPDF)
	api.POST("/report/xlsx", h.reportXLSX)
	api.GET("/report/:id/html", h.reportHTML)
	api.POST("/uploads", h.uploads)
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listOrGet(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if id := c.Query("id"); id != "" {
			result, err := h.collections.Get(ctx, name, id)
			if err != nil {
				h.handleError(c, err)
				return
			}
			if result.Doc != nil {
				c.JSON(http.StatusOK, gin.H{"ok": true, "doc": result.Doc})
				return
			}
			c.JSON(http.StatusOK, gin.H{"ok": true, "docs": result.Docs})
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		docs, err := h.collections.List(ctx, name, limit)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "count": len(docs), "docs": docs})
	}
}

func (h *Handler) create(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.MustPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		id, err := h.collections.Create(c.Request.Context(), name, payload, principal)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "insertedId": id})
	}
}

func (h *Handler) update(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid id"})
			return
		}

		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		modified, err := h.collections.Update(c.Request.Context(), name, id, patch)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "modifiedCount": modified})
	}
}

func (h *Handler) remove(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid id"})
			return
		}

		deleted, err := h.collections.Delete(c.Request.Context(), name, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "deletedCount": deleted})
	}
}

func (h *Handler) status(c *gin.Context) {
	counts, err := h.collections.Counts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "counts": counts})
}

func (h *Handler) dashboardStats(c *gin.Context) {
	dashboard, err := h.collections.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": dashboard})
}

func (h *Handler) reportPDF(c *gin.Context) {
	var data model.Report
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report payload"})
		return
	}

	result, err := h.reports.GeneratePDF(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) reportXLSX(c *gin.Context) {
	var data model.Report
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report payload"})
		return
	}

	result, err := h.reports.GenerateXLSX(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, xlsxType, result.Content)
}

func (h *Handler) reportHTML(c *gin.Context) {
	content, err := h.reports.RenderHTML(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", content)
}

type uploadItem struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// uploads stores attachment files. Failures are reported per item; a
// record referencing a failed upload simply has no attachment URL.
func (h *Handler) uploads(c *gin.Context) {
	if h.blobs == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "attachment storage not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart payload"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files supplied"})
		return
	}

	items := make([]uploadItem, 0, len(files))
	for _, fh := range files {
		item := uploadItem{Name: fh.Filename}

		src, err := fh.Open()
		if err != nil {
			item.Error = "unreadable file"
			items = append(items, item)
			continue
		}

		key := "uploads/" + uuid.NewString() + filepath.Ext(fh.Filename)
		url, err := h.blobs.Put(c.Request.Context(), key, src, fh.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			h.log.Warn().Err(err).Str("file", fh.Filename).Msg("attachment upload failed")
			item.Error = "upload failed"
			items = append(items, item)
			continue
		}

		item.URL = url
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "files": items})
}

func (h *Handler) roleFeed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	id, events := h.feed.Subscribe()
	defer h.feed.Unsubscribe(id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				conn.Close()
				<-done
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				<-done
				return
			}
		case <-done:
			conn.Close()
			return
		}
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, report.ErrMalformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
