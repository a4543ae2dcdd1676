package bill

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marinhl/housemate/internal/bill/distribute"
	"github.com/marinhl/housemate/pkg/middleware"
	"github.com/marinhl/housemate/pkg/response"
)

// Handler handles HTTP requests for bill operations
type Handler struct {
	service *Service
}

// NewHandler creates a new bill handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for bill endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)
	r.Get("/household/{householdId}", h.ListByHousehold)
	r.Post("/{id}/distribute", h.Distribute)
	r.Put("/{id}/status", h.UpdateStatus)
	r.Post("/shares/{shareId}/pay", h.MarkSharePaid)

	return r
}

// Create handles POST /bills
// @Summary      Create a new bill
// @Description  Record a bill paid by the authenticated user
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body CreateBillRequest true "Bill creation request"
// @Success      201 {object} response.APIResponse{data=BillResponse}
// @Failure      422 {object} response.APIResponse
// @Router       /bills [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := h.service.Create(r.Context(), payerID, &req)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			response.ValidationFailed(w, toResponseFields(vErr.Fields))
			return
		}
		response.InternalError(w, "Failed to create bill")
		return
	}

	response.JSON(w, http.StatusCreated, bill.ToResponse())
}

// GetByID handles GET /bills/{id}
// @Summary      Get bill by ID
// @Description  Get a bill with its shares
// @Tags         bills
// @Produce      json
// @Param        id path int true "Bill ID"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get bill")
		return
	}

	response.JSON(w, http.StatusOK, toBillWithSharesResponse(result))
}

// ListByHousehold handles GET /bills/household/{householdId}
// @Summary      List bills for a household
// @Description  Get the bills of a household, newest first, paginated
// @Tags         bills
// @Produce      json
// @Param        householdId path int true "Household ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]BillResponse}
// @Router       /bills/household/{householdId} [get]
func (h *Handler) ListByHousehold(w http.ResponseWriter, r *http.Request) {
	householdID, err := strconv.ParseInt(chi.URLParam(r, "householdId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	bills, total, err := h.service.ListByHousehold(r.Context(), householdID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list bills")
		return
	}

	billResponses := make([]*BillResponse, len(bills))
	for i, b := range bills {
		billResponses[i] = b.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, billResponses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Distribute handles POST /bills/{id}/distribute
// @Summary      Distribute a bill
// @Description  Split the bill's amount among participants using EQUAL, PERCENTAGE or FIXED strategy
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path int true "Bill ID"
// @Param        request body DistributeBillRequest true "Distribution request"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id}/distribute [post]
func (h *Handler) Distribute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	var req DistributeBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.Distribute(r.Context(), id, &req)
	if err != nil {
		h.writeDistributeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toBillWithSharesResponse(result))
}

// UpdateStatus handles PUT /bills/{id}/status
// @Summary      Update bill payment status
// @Description  Change the bill's payment status (payer only)
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path int true "Bill ID"
// @Param        request body UpdateBillStatusRequest true "Status update request"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id}/status [put]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateBillStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := h.service.UpdateStatus(r.Context(), id, userID, req.Status)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update bill status")
		return
	}

	response.JSON(w, http.StatusOK, bill.ToResponse())
}

// MarkSharePaid handles POST /bills/shares/{shareId}/pay
// @Summary      Mark a share as paid
// @Description  The owing member settles their share of a bill
// @Tags         bills
// @Produce      json
// @Param        shareId path int true "Share ID"
// @Success      200 {object} response.APIResponse{data=ShareResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/shares/{shareId}/pay [post]
func (h *Handler) MarkSharePaid(w http.ResponseWriter, r *http.Request) {
	shareID, err := strconv.ParseInt(chi.URLParam(r, "shareId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid share ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	share, err := h.service.MarkSharePaid(r.Context(), shareID, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to mark share as paid")
		return
	}

	response.JSON(w, http.StatusOK, share.ToResponse())
}

// Delete handles DELETE /bills/{id}
// @Summary      Delete a bill
// @Description  Remove a bill and its pending shares (payer only)
// @Tags         bills
// @Produce      json
// @Param        id path int true "Bill ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /bills/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrCannotDeleteBill) {
			response.Conflict(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to delete bill")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Bill deleted successfully"})
}

// writeDistributeError maps engine and service errors from a distribution
// request onto status codes. All engine rejections are client errors.
func (h *Handler) writeDistributeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBillNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrDuplicateParticipant),
		errors.Is(err, distribute.ErrUnknownMode),
		errors.Is(err, distribute.ErrNegativeAmount),
		errors.Is(err, distribute.ErrNoParticipants),
		errors.Is(err, distribute.ErrMissingParams),
		errors.Is(err, distribute.ErrMissingParticipantParam),
		errors.Is(err, distribute.ErrPercentageSum),
		errors.Is(err, distribute.ErrInsufficientFixedTotal):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Failed to distribute bill")
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBillNotFound), errors.Is(err, ErrShareNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotPayer), errors.Is(err, ErrNotShareOwner):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrShareAlreadyPaid):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

func toBillWithSharesResponse(b *BillWithShares) *BillResponse {
	resp := b.Bill.ToResponse()
	resp.Shares = make([]*ShareResponse, len(b.Shares))
	for i, s := range b.Shares {
		resp.Shares[i] = s.ToResponse()
	}
	return resp
}

func toResponseFields(fields []FieldError) []response.FieldError {
	out := make([]response.FieldError, len(fields))
	for i, f := range fields {
		out[i] = response.FieldError{Field: f.Field, Message: f.Message}
	}
	return out
}
