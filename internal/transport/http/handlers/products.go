package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ultimatetechie/ecommerce-api/internal/application/catalog"
	"github.com/ultimatetechie/ecommerce-api/internal/logger"
	"github.com/ultimatetechie/ecommerce-api/internal/transport/http/dto"
	"github.com/ultimatetechie/ecommerce-api/internal/transport/http/response"
)

// ProductHandler serves the /api/product surface. Reads are public;
// writes sit behind auth in the router.
type ProductHandler struct {
	svc *catalog.Service
}

func NewProductHandler(svc *catalog.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToProductViews(products))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToProductView(p))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), catalog.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("product_id", p.ID).
		Msg("product created")

	response.Created(w, dto.ToProductView(p))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), catalog.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToProductView(p))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("product_id", id).
		Msg("product deactivated")

	response.NoContent(w)
}
