package household

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marinhl/housemate/pkg/middleware"
	"github.com/marinhl/housemate/pkg/response"
)

// Handler handles HTTP requests for household operations
type Handler struct {
	service *Service
}

// NewHandler creates a new household handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for household endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	// Member management
	r.Post("/{id}/members", h.AddMember)
	r.Get("/{id}/members", h.GetMembers)
	r.Put("/{id}/members/{userId}", h.UpdateMember)
	r.Delete("/{id}/members/{userId}", h.RemoveMember)
	r.Post("/{id}/accept", h.AcceptInvitation)

	return r
}

// Create handles POST /households
// @Summary      Create a new household
// @Description  Create a household and add the creator as a joined admin
// @Tags         households
// @Accept       json
// @Produce      json
// @Param        request body CreateHouseholdRequest true "Household creation request"
// @Success      201 {object} response.APIResponse{data=HouseholdResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /households [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.BadRequest(w, "Household name is required")
		return
	}

	household, err := h.service.Create(r.Context(), creatorID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create household")
		return
	}

	response.JSON(w, http.StatusCreated, household.ToResponse())
}

// List handles GET /households
// @Summary      List my households
// @Description  Get the households the authenticated user belongs to
// @Tags         households
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]HouseholdResponse}
// @Router       /households [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	households, err := h.service.ListByUserID(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list households")
		return
	}

	householdResponses := make([]*HouseholdResponse, len(households))
	for i, hh := range households {
		householdResponses[i] = hh.ToResponse()
	}

	response.JSON(w, http.StatusOK, householdResponses)
}

// GetByID handles GET /households/{id}
// @Summary      Get household by ID
// @Description  Get a household with all its members
// @Tags         households
// @Produce      json
// @Param        id path int true "Household ID"
// @Success      200 {object} response.APIResponse{data=HouseholdResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /households/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	household, members, err := h.service.GetByIDWithMembers(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHouseholdNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get household")
		return
	}

	householdResp := household.ToResponse()
	householdResp.Members = make([]*MemberResponse, len(members))
	for i, m := range members {
		householdResp.Members[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, householdResp)
}

// Update handles PUT /households/{id}
// @Summary      Update a household
// @Tags         households
// @Accept       json
// @Produce      json
// @Param        id path int true "Household ID"
// @Param        request body UpdateHouseholdRequest true "Household update request"
// @Success      200 {object} response.APIResponse{data=HouseholdResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /households/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	household, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update household")
		return
	}

	response.JSON(w, http.StatusOK, household.ToResponse())
}

// Delete handles DELETE /households/{id}
// @Summary      Delete a household
// @Tags         households
// @Produce      json
// @Param        id path int true "Household ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /households/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.writeServiceError(w, err, "Failed to delete household")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Household deleted successfully"})
}

// AddMember handles POST /households/{id}/members
// @Summary      Invite a member
// @Description  Invite a user into the household (admin only)
// @Tags         households
// @Accept       json
// @Produce      json
// @Param        id path int true "Household ID"
// @Param        request body AddMemberRequest true "Member invitation request"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /households/{id}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	member, err := h.service.AddMember(r.Context(), id, adminID, &req)
	if err != nil {
		if errors.Is(err, ErrMemberAlreadyExists) {
			response.Conflict(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to add member")
		return
	}

	response.JSON(w, http.StatusCreated, member.ToResponse())
}

// GetMembers handles GET /households/{id}/members
// @Summary      List household members
// @Tags         households
// @Produce      json
// @Param        id path int true "Household ID"
// @Success      200 {object} response.APIResponse{data=[]MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /households/{id}/members [get]
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	members, err := h.service.GetMembers(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHouseholdNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get members")
		return
	}

	memberResponses := make([]*MemberResponse, len(members))
	for i, m := range members {
		memberResponses[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, memberResponses)
}

// UpdateMember handles PUT /households/{id}/members/{userId}
// @Summary      Update a member
// @Description  Change a member's role or status (admin only)
// @Tags         households
// @Accept       json
// @Produce      json
// @Param        id path int true "Household ID"
// @Param        userId path int true "User ID"
// @Param        request body UpdateMemberRequest true "Member update request"
// @Success      200 {object} response.APIResponse{data=MemberResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /households/{id}/members/{userId} [put]
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	member, err := h.service.UpdateMember(r.Context(), id, adminID, targetID, &req)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to update member")
		return
	}

	response.JSON(w, http.StatusOK, member.ToResponse())
}

// RemoveMember handles DELETE /households/{id}/members/{userId}
// @Summary      Remove a member
// @Description  Admins can remove anyone; members can remove themselves
// @Tags         households
// @Produce      json
// @Param        id path int true "Household ID"
// @Param        userId path int true "User ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /households/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.RemoveMember(r.Context(), id, callerID, targetID); err != nil {
		h.writeServiceError(w, err, "Failed to remove member")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}

// AcceptInvitation handles POST /households/{id}/accept
// @Summary      Accept an invitation
// @Description  Mark the caller's pending membership as joined
// @Tags         households
// @Produce      json
// @Param        id path int true "Household ID"
// @Success      200 {object} response.APIResponse{data=MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /households/{id}/accept [post]
func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid household ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	member, err := h.service.AcceptInvitation(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to accept invitation")
		return
	}

	response.JSON(w, http.StatusOK, member.ToResponse())
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrHouseholdNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotAuthorized):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
