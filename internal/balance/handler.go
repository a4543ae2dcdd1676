package balance

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marinhl/housemate/pkg/response"
)

// Handler handles HTTP requests for balance operations
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/household/{householdId}", h.GetHouseholdBalances)

	return r
}

// GetHouseholdBalances handles GET /balances/household/{householdId}
// @Summary      Get household balances
// @Description  Get every member's standing over pending shares plus suggested settlement transfers
// @Tags         balances
// @Produce      json
// @Param        householdId path int true "Household ID"
// @Success      200 {object} response.APIResponse{data=HouseholdBalancesResponse}
// @Router       /balances/household/{householdId} [get]
func (h *Handler) GetHouseholdBalances(w http.ResponseWriter, r *http.Request) {
	householdID, err := strconv.ParseInt(chi.URLParam(r, "householdId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	balances, err := h.service.GetHouseholdBalances(r.Context(), householdID)
	if err != nil {
		response.InternalError(w, "Failed to get balances")
		return
	}

	transfers := h.service.SuggestTransfers(balances)

	resp := &HouseholdBalancesResponse{
		Balances:           make([]*MemberBalanceResponse, len(balances)),
		SuggestedTransfers: make([]*TransferResponse, len(transfers)),
	}
	for i, b := range balances {
		resp.Balances[i] = b.ToResponse()
	}
	for i := range transfers {
		resp.SuggestedTransfers[i] = transfers[i].ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}
