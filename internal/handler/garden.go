package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/garden"
	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// UserRequest identifies the gardener performing an action
type UserRequest struct {
	UserID string `json:"user_id" validate:"userid"`
}

// FertilizeRequest applies a fertilizer from the gardener's shed
type FertilizeRequest struct {
	UserID    string `json:"user_id" validate:"userid"`
	ProductID string `json:"product_id" validate:"required,max=64"`
}

// BuyRequest purchases uses of a product with points
type BuyRequest struct {
	UserID    string `json:"user_id" validate:"userid"`
	ProductID string `json:"product_id" validate:"required,max=64"`
	Amount    int    `json:"amount" validate:"gt=0,max=10000"`
}

// ConvertRequest moves points into the gardener's bank account
type ConvertRequest struct {
	UserID string `json:"user_id" validate:"userid"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

// PlantListResponse lists catalog plant names
type PlantListResponse struct {
	Plants []string `json:"plants"`
}

// GardenHandler serves the gardening API
type GardenHandler struct {
	svc garden.Service
}

// NewGardenHandler creates a new garden handler
func NewGardenHandler(svc garden.Service) *GardenHandler {
	return &GardenHandler{svc: svc}
}

// Routes mounts the garden endpoints on a router
func (h *GardenHandler) Routes(r chi.Router) {
	r.Post("/seed", h.Seed)
	r.Post("/shovel", h.Shovel)
	r.Post("/water", h.Water)
	r.Post("/fertilize", h.Fertilize)
	r.Post("/prune", h.Prune)
	r.Post("/buy", h.Buy)
	r.Post("/convert", h.Convert)
	r.Get("/profile", h.Profile)
	r.Get("/state", h.State)
	r.Get("/plants", h.Plants)
	r.Get("/plants/{name}", h.Plant)
	r.Get("/products", h.Products)
}

// Seed plants a random eligible seed
// @Summary Plant a seed
// @Tags gardening
// @Accept json
// @Produce json
// @Param request body UserRequest true "Gardener"
// @Success 200 {object} garden.SeedResult
// @Failure 409 {object} ErrorResponse "Already growing a plant"
// @Router /api/v1/gardening/seed [post]
func (h *GardenHandler) Seed(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpSeed, func(ctx context.Context, req UserRequest) (*garden.SeedResult, error) {
		return h.svc.Seed(ctx, req.UserID)
	})
}

// Shovel abandons the current plant
// @Summary Shovel out the current plant
// @Tags gardening
// @Accept json
// @Produce json
// @Param request body UserRequest true "Gardener"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse "Not growing a plant"
// @Router /api/v1/gardening/shovel [post]
func (h *GardenHandler) Shovel(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpShovel, func(ctx context.Context, req UserRequest) (SuccessResponse, error) {
		if err := h.svc.Abandon(ctx, req.UserID); err != nil {
			return SuccessResponse{}, err
		}
		return SuccessResponse{Message: MsgShovelled}, nil
	})
}

// Water applies the water product
// @Summary Water the plant
// @Tags gardening
// @Accept json
// @Produce json
// @Param request body UserRequest true "Gardener"
// @Success 200 {object} garden.ApplyResult
// @Failure 409 {object} ErrorResponse "No plant or out of water"
// @Router /api/v1/gardening/water [post]
func (h *GardenHandler) Water(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpWater, func(ctx context.Context, req UserRequest) (*garden.ApplyResult, error) {
		return h.svc.Water(ctx, req.UserID)
	})
}

// Fertilize applies a named fertilizer
// @Summary Fertilize the plant
// @Tags gardening
// @Accept json
// @Produce json
// @Param request body FertilizeRequest true "Fertilizer"
// @Success 200 {object} garden.ApplyResult
// @Failure 404 {object} ErrorResponse "Unknown fertilizer"
// @Router /api/v1/gardening/fertilize [post]
func (h *GardenHandler) Fertilize(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpFertilize, func(ctx context.Context, req FertilizeRequest) (*garden.ApplyResult, error) {
		return h.svc.Fertilize(ctx, req.UserID, req.ProductID)
	})
}

// Prune applies the pruning tool
// @Summary Prune the plant
// @Tags gardening
// @Accept json
// @Produce json
// @Param request body UserRequest true "Gardener"
// @Success 200 {object} garden.ApplyResult
// @Router /api/v1/gardening/prune [post]
func (h *GardenHandler) Prune(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpPrune, func(ctx context.Context, req UserRequest) (*garden.ApplyResult, error) {
		return h.svc.Prune(ctx, req.UserID)
	})
}

// Buy purchases product uses with points
// @Summary Buy a product
// @Tags gardening
// @Accept json
// @Produce json
// @Param request body BuyRequest true "Purchase"
// @Success 200 {object} garden.BuyResult
// @Failure 402 {object} ErrorResponse "Not enough points"
// @Router /api/v1/gardening/buy [post]
func (h *GardenHandler) Buy(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpBuy, func(ctx context.Context, req BuyRequest) (*garden.BuyResult, error) {
		return h.svc.Buy(ctx, req.UserID, req.ProductID, req.Amount)
	})
}

// Convert moves points into the external bank
// @Summary Convert points to bank credits
// @Tags gardening
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion"
// @Success 200 {object} garden.ConvertResult
// @Failure 402 {object} ErrorResponse "Not enough points"
// @Failure 422 {object} ErrorResponse "No bank account"
// @Router /api/v1/gardening/convert [post]
func (h *GardenHandler) Convert(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpConvert, func(ctx context.Context, req ConvertRequest) (*garden.ConvertResult, error) {
		return h.svc.Convert(ctx, req.UserID, req.Amount)
	})
}

// Profile returns the gardener's points, badges, products and plant
// @Summary Gardener profile
// @Tags gardening
// @Produce json
// @Param user_id query string true "Gardener id"
// @Success 200 {object} garden.Profile
// @Router /api/v1/gardening/profile [get]
func (h *GardenHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDParam(r, w)
	if !ok {
		return
	}

	profile, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpProfile, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// State returns the current plant
// @Summary Current plant state
// @Tags gardening
// @Produce json
// @Param user_id query string true "Gardener id"
// @Success 200 {object} garden.PlantView
// @Failure 409 {object} ErrorResponse "Not growing a plant"
// @Router /api/v1/gardening/state [get]
func (h *GardenHandler) State(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDParam(r, w)
	if !ok {
		return
	}

	view, err := h.svc.State(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpState, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Plants lists plant names
// @Summary List plants
// @Tags gardening
// @Produce json
// @Success 200 {object} PlantListResponse
// @Router /api/v1/gardening/plants [get]
func (h *GardenHandler) Plants(w http.ResponseWriter, r *http.Request) {
	plants := h.svc.Plants()
	names := make([]string, 0, len(plants))
	for _, p := range plants {
		names = append(names, p.Name)
	}
	respondJSON(w, http.StatusOK, PlantListResponse{Plants: names})
}

// Plant returns a plant template by name
// @Summary Plant detail
// @Tags gardening
// @Produce json
// @Param name path string true "Plant name"
// @Success 200 {object} domain.PlantTemplate
// @Failure 404 {object} ErrorResponse "Unknown plant"
// @Router /api/v1/gardening/plants/{name} [get]
func (h *GardenHandler) Plant(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tmpl, err := h.svc.Plant(name)
	if err != nil {
		respondServiceError(w, r, OpPlant, err)
		return
	}
	logger.FromContext(r.Context()).Debug("Plant lookup", "name", name)
	respondJSON(w, http.StatusOK, tmpl)
}

// Products lists purchasable products
// @Summary List products
// @Tags gardening
// @Produce json
// @Success 200 {array} domain.Product
// @Router /api/v1/gardening/products [get]
func (h *GardenHandler) Products(w http.ResponseWriter, r *http.Request) {
	products := h.svc.Products()
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}
