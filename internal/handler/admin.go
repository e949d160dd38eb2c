package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vexora-shop/accounts/internal/domain"
	"github.com/vexora-shop/accounts/internal/utils"
)

type customersResponse struct {
	Customers []domain.User `json:"customers"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
}

// Customers handles GET /v1/admin/customers?search=&page=
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	customers, total, err := h.accounts.Customers(search, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if customers == nil {
		customers = []domain.User{}
	}

	writeJSON(w, customersResponse{Customers: customers, Total: total, Page: page})
}

// BlockCustomer handles POST /v1/admin/customers/{customerId}/block
func (h *Handler) BlockCustomer(w http.ResponseWriter, r *http.Request) {
	customerId, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	if err := h.accounts.BlockCustomer(customerId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Customer blocked"))
}

// UnblockCustomer handles DELETE /v1/admin/customers/{customerId}/block
func (h *Handler) UnblockCustomer(w http.ResponseWriter, r *http.Request) {
	customerId, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	if err := h.accounts.UnblockCustomer(customerId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Customer unblocked"))
}
