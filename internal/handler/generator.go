package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mktops/hid-generator/internal/config"
	"github.com/mktops/hid-generator/internal/hid"
	"github.com/mktops/hid-generator/internal/model"
	"github.com/mktops/hid-generator/internal/queue"
	"github.com/mktops/hid-generator/internal/repository"
	queue_publisher "github.com/mktops/hid-generator/internal/service"
)

// GeneratorHandler serves the identifier form: the option lists that
// populate it and the generate action itself.
type GeneratorHandler struct {
	Cfg        config.Config
	Categories *repository.CategoryRepo
	Types      *repository.TypeRepo
	History    *repository.HistoryRepo
}

func NewGeneratorHandler(cfg config.Config, cat *repository.CategoryRepo, typ *repository.TypeRepo, hist *repository.HistoryRepo) *GeneratorHandler {
	return &GeneratorHandler{Cfg: cfg, Categories: cat, Types: typ, History: hist}
}

// ----- DTOs -----

// Options are value/label pairs plus the data the form needs per entry.
// Carrying the id next to the display name is deliberate: the client
// never has to parse a "Name (code)" label back into a key.
type categoryOption struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}
type typeOption struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Positions []int  `json:"positions"`
}
type optionsResp struct {
	Categories []categoryOption `json:"categories"`
	Types      []typeOption     `json:"types"`
	Countries  []string         `json:"countries"`
}

type generateReq struct {
	BaseURL    string `json:"base_url"`
	Country    string `json:"country"`
	CategoryID uint64 `json:"category_id"`
	TypeID     uint64 `json:"type_id"`
	Position   int    `json:"position"`
}
type generateResp struct {
	Hid       string `json:"hid"`
	FinalURL  string `json:"final_url"`
	HistoryID uint64 `json:"history_id"`
}

// Options returns everything the generator form needs in one payload.
// Types with an empty position list are presented with the default 1..20
// candidate range instead of blocking generation.
func (h *GeneratorHandler) Options(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load categories failed"})
	}
	types, err := h.Types.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load types failed"})
	}

	resp := optionsResp{
		Categories: make([]categoryOption, 0, len(cats)),
		Types:      make([]typeOption, 0, len(types)),
		Countries:  h.Cfg.Countries,
	}
	for _, cat := range cats {
		resp.Categories = append(resp.Categories, categoryOption{ID: cat.ID, Name: cat.Name, Prefix: cat.Prefix})
	}
	for _, t := range types {
		positions, err := h.Types.ListPositions(ctx, t.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load positions failed"})
		}
		if len(positions) == 0 {
			positions = hid.DefaultPositions()
		}
		resp.Types = append(resp.Types, typeOption{ID: t.ID, Name: t.Name, Code: t.Code, Positions: positions})
	}
	return c.JSON(http.StatusOK, resp)
}

// Generate computes the hid for the selected triple, merges it into the
// base URL, records one history row and publishes a hid.generated event.
// A broker outage only costs the event, never the generation.
func (h *GeneratorHandler) Generate(c echo.Context) error {
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.BaseURL = strings.TrimSpace(req.BaseURL)
	req.Country = strings.ToUpper(strings.TrimSpace(req.Country))
	if req.BaseURL == "" || req.Country == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_url and country required"})
	}
	if req.CategoryID == 0 || req.TypeID == 0 || req.Position < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id, type_id and position required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load category failed"})
	}
	typ, err := h.Types.GetByID(ctx, req.TypeID)
	if err != nil {
		if errors.Is(err, repository.ErrTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load type failed"})
	}

	positions, err := h.Types.ListPositions(ctx, typ.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load positions failed"})
	}
	if len(positions) == 0 {
		positions = hid.DefaultPositions()
	}
	if !containsPosition(positions, req.Position) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "position not allowed for this type"})
	}

	token := hid.Build(cat.Prefix, typ.Code, req.Position)
	finalURL, err := hid.MergeIntoURL(req.BaseURL, token)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_url is not a parseable URL"})
	}

	rec := model.HistoryRecord{
		BaseURL:      req.BaseURL,
		FinalURL:     finalURL,
		Country:      req.Country,
		CategoryName: cat.Name,
		TypeCode:     typ.Code,
		OrderValue:   req.Position,
		HidValue:     token,
	}
	if err := h.History.Insert(ctx, &rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record history failed"})
	}

	// Best-effort event; the publisher logs its own failures.
	_ = queue_publisher.PublishHidGenerated(ctx, queue.HidGeneratedEvent{
		HistoryID:    rec.ID,
		Username:     currentUsername(c),
		Country:      rec.Country,
		CategoryName: rec.CategoryName,
		TypeCode:     rec.TypeCode,
		OrderValue:   rec.OrderValue,
		HidValue:     rec.HidValue,
		BaseURL:      rec.BaseURL,
		FinalURL:     rec.FinalURL,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, generateResp{Hid: token, FinalURL: finalURL, HistoryID: rec.ID})
}

func containsPosition(positions []int, p int) bool {
	for _, n := range positions {
		if n == p {
			return true
		}
	}
	return false
}
