package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/snackshop/storefront/internal/service"
)

type CartHandler struct {
	svc *service.CartService
}

func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type LineDTO struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity"`
	BaseUnitPrice string `json:"base_unit_price"`
	UnitPrice     string `json:"unit_price"`
	BulkDiscount  bool   `json:"bulk_discount"`
	Subtotal      string `json:"subtotal"`
}

type TotalsDTO struct {
	ItemCount        int    `json:"item_count"`
	CartTotal        string `json:"cart_total"`
	WeekendSurcharge bool   `json:"weekend_surcharge"`
	MondayDiscount   bool   `json:"monday_discount"`
	DiscountAmount   string `json:"discount_amount"`
	Shipping         string `json:"shipping"`
	GrandTotal       string `json:"grand_total"`
	InvoiceEligible  bool   `json:"invoice_eligible"`
}

type CartResponseDTO struct {
	Items  []LineDTO `json:"items"`
	Totals TotalsDTO `json:"totals"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view := h.svc.View(sessionIDFromContext(r.Context()))
	respondJSON(w, http.StatusOK, toCartResponse(view))
}

// AddItem handles add-to-cart intents. Unknown products and non-positive
// quantities do not mutate the cart; the response carries the unchanged
// state rather than an error, since such intents come from stale UI.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	view := h.svc.AddToCart(sessionIDFromContext(r.Context()), req.ProductID, req.Quantity)
	respondJSON(w, http.StatusCreated, toCartResponse(view))
}

func (h *CartHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	view := h.svc.Increment(sessionIDFromContext(r.Context()), productID)
	respondJSON(w, http.StatusOK, toCartResponse(view))
}

func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	view := h.svc.Decrement(sessionIDFromContext(r.Context()), productID)
	respondJSON(w, http.StatusOK, toCartResponse(view))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	view := h.svc.Remove(sessionIDFromContext(r.Context()), productID)
	respondJSON(w, http.StatusOK, toCartResponse(view))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	view := h.svc.Clear(sessionIDFromContext(r.Context()))
	respondJSON(w, http.StatusOK, toCartResponse(view))
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}

// toCartResponse renders the view for display. Amounts are rounded to
// two decimals here and nowhere earlier.
func toCartResponse(view service.CartView) CartResponseDTO {
	q := view.Quote

	items := make([]LineDTO, 0, len(q.Lines))
	for _, l := range q.Lines {
		items = append(items, LineDTO{
			ProductID:     l.ProductID,
			Name:          l.Name,
			Category:      string(l.Category),
			Quantity:      l.Quantity,
			BaseUnitPrice: l.BaseUnitPrice.StringFixed(2),
			UnitPrice:     l.UnitPrice.StringFixed(2),
			BulkDiscount:  l.BulkDiscount,
			Subtotal:      l.Subtotal.StringFixed(2),
		})
	}

	return CartResponseDTO{
		Items: items,
		Totals: TotalsDTO{
			ItemCount:        q.ItemCount,
			CartTotal:        q.CartTotal.StringFixed(2),
			WeekendSurcharge: q.WeekendSurcharge,
			MondayDiscount:   q.MondayDiscount,
			DiscountAmount:   q.DiscountAmount.StringFixed(2),
			Shipping:         q.Shipping.StringFixed(2),
			GrandTotal:       q.DisplayGrandTotal().StringFixed(2),
			InvoiceEligible:  q.InvoiceEligible(),
		},
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
