package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthy-bite-selector/internal/app"
	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/foodlist"
	"healthy-bite-selector/internal/importer"
	"healthy-bite-selector/internal/planner"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	app    *app.App
	logger *zap.Logger
}

func NewHandler(a *app.App, logger *zap.Logger) *Handler {
	return &Handler{app: a, logger: logger}
}

// writeError maps domain errors onto HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, planner.ErrInvalidPreferences), errors.Is(err, foodlist.ErrEmptyItem):
		status = http.StatusBadRequest
	case errors.Is(err, foodlist.ErrDuplicateItem):
		status = http.StatusConflict
	case errors.Is(err, foodlist.ErrItemNotFound), errors.Is(err, foodlist.ErrEmptyList),
		errors.Is(err, app.ErrNoPlan), errors.Is(err, app.ErrDayOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, planner.ErrNoEligibleDishes):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) ListFoods(c *gin.Context) {
	items, err := h.app.Foods(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "selected": h.app.SelectedFood()})
}

func (h *Handler) AddFood(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, err := h.app.AddFood(c.Request.Context(), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) RemoveFood(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	removed, err := h.app.RemoveFood(c.Request.Context(), index)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) PickFood(c *gin.Context) {
	item, changed, err := h.app.PickFood(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "changed": changed})
}

func (h *Handler) ImportFoods(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	summary, err := h.app.ImportFoods(c.Request.Context(), req.URL)
	if errors.Is(err, importer.ErrUnsupportedScheme) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) Catalog(c *gin.Context) {
	cuisine, err := catalog.ParseCuisine(c.DefaultQuery("cuisine", string(catalog.Healthy)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dishes, err := catalog.Dishes(cuisine)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cuisine": cuisine, "dishes": dishes})
}

func (h *Handler) GeneratePlan(c *gin.Context) {
	var prefs planner.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := app.WithSource(c.Request.Context(), "api")
	res, err := h.app.GeneratePlan(ctx, prefs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) CurrentPlan(c *gin.Context) {
	plan, err := h.app.CurrentPlan(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) ExportPlan(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.app.ExportCurrentPlan(c.Request.Context(), &buf); err != nil {
		h.writeError(c, err)
		return
	}
	filename := fmt.Sprintf("meal-plan-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) ShoppingList(c *gin.Context) {
	list, err := h.app.ShoppingList(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) ListFavorites(c *gin.Context) {
	favs, err := h.app.Favorites(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

// AddFavorite accepts either a slot of the current plan ({"day": 1, "category": "lunch"},
// day is 1-based) or a full dish record ({"dish": {...}}).
func (h *Handler) AddFavorite(c *gin.Context) {
	var req struct {
		Day      int                 `json:"day"`
		Category string              `json:"category"`
		Dish     *catalog.DishRecord `json:"dish"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	if req.Dish != nil {
		if req.Dish.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dish name is required"})
			return
		}
		fav, err := h.app.AddFavorite(ctx, *req.Dish)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, fav)
		return
	}

	category, err := catalog.ParseCategory(req.Category)
	if err != nil || req.Day < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day (1-based) and category are required"})
		return
	}
	fav, err := h.app.FavoriteFromPlan(ctx, req.Day-1, category)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fav)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	removed, err := h.app.RemoveFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) History(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("all") == "true" {
		entries, err := h.app.AllHistory(ctx)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"history": entries})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	entries, err := h.app.RecentHistory(ctx, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *Handler) Metrics(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}

	resp := gin.H{"health": h.app.SysHealth()}
	usage, err := h.app.MetricsUsage(c.Request.Context(), days)
	switch {
	case errors.Is(err, app.ErrMetricsDisabled):
		resp["usage"] = nil
	case err != nil:
		h.writeError(c, err)
		return
	default:
		resp["usage"] = usage
	}
	c.JSON(http.StatusOK, resp)
}
