// Package complaint exposes the complaint lifecycle over HTTP.
package complaint

import (
	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/application/complaint/usecases"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

type Handler struct {
	createUC usecases.CreateComplaintExecutor
	listUC   usecases.ListComplaintsExecutor
	getUC    usecases.GetComplaintExecutor
	updateUC usecases.UpdateComplaintStatusExecutor
	rateUC   usecases.RateComplaintExecutor
	deleteUC usecases.DeleteComplaintExecutor
	statsUC  usecases.GetComplaintStatsExecutor
	logger   logger.Interface
}

func NewHandler(
	createUC usecases.CreateComplaintExecutor,
	listUC usecases.ListComplaintsExecutor,
	getUC usecases.GetComplaintExecutor,
	updateUC usecases.UpdateComplaintStatusExecutor,
	rateUC usecases.RateComplaintExecutor,
	deleteUC usecases.DeleteComplaintExecutor,
	statsUC usecases.GetComplaintStatsExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		updateUC: updateUC,
		rateUC:   rateUC,
		deleteUC: deleteUC,
		statsUC:  statsUC,
		logger:   logger,
	}
}

// CreateComplaint handles POST /complaints
//
//	@Summary		File a complaint
//	@Description	Create a complaint for the authenticated citizen
//	@Tags			complaints
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			complaint	body		CreateComplaintRequest	true	"Complaint data"
//	@Success		201			{object}	map[string]interface{}
//	@Failure		400			{object}	utils.ErrorBody
//	@Failure		401			{object}	utils.ErrorBody
//	@Failure		403			{object}	utils.ErrorBody
//	@Router			/complaints [post]
func (h *Handler) CreateComplaint(c *gin.Context) {
	requester, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create complaint", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Please provide issue type, description, address, latitude and longitude", err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(requester))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"complaint": result})
}

// ListComplaints handles GET /complaints
//
//	@Summary		List complaints
//	@Description	Citizens see their own complaints; staff see all
//	@Tags			complaints
//	@Produce		json
//	@Security		Bearer
//	@Param			status		query		string	false	"Filter by status"
//	@Param			issueType	query		string	false	"Filter by issue type"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			limit		query		int		false	"Page size"		default(10)
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	utils.ErrorBody
//	@Failure		401			{object}	utils.ErrorBody
//	@Router			/complaints [get]
func (h *Handler) ListComplaints(c *gin.Context) {
	requester, ok := requireIdentity(c)
	if !ok {
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), parseListComplaintsQuery(c, requester))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, "complaints", result.Complaints, len(result.Complaints), result.Total, result.Page, result.Limit)
}

// GetComplaint handles GET /complaints/:id
//
//	@Summary		Get a complaint
//	@Tags			complaints
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string	true	"Complaint ID"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		403	{object}	utils.ErrorBody
//	@Failure		404	{object}	utils.ErrorBody
//	@Router			/complaints/{id} [get]
func (h *Handler) GetComplaint(c *gin.Context) {
	requester, ok := requireIdentity(c)
	if !ok {
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetComplaintQuery{
		Requester:   requester,
		ComplaintID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"complaint": result})
}

// UpdateComplaintStatus handles PUT /complaints/:id/status
//
//	@Summary		Triage a complaint
//	@Description	Update any subset of status, assignment, resolution notes and priority
//	@Tags			complaints
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string				true	"Complaint ID"
//	@Param			patch	body		UpdateStatusRequest	true	"Fields to change"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	utils.ErrorBody
//	@Failure		403		{object}	utils.ErrorBody
//	@Failure		404		{object}	utils.ErrorBody
//	@Router			/complaints/{id}/status [put]
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	requester, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update complaint status", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), req.ToCommand(requester, c.Param("id")))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"complaint": result})
}

// RateComplaint handles PUT /complaints/:id/rate
//
//	@Summary		Rate a complaint
//	@Tags			complaints
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string					true	"Complaint ID"
//	@Param			rating	body		RateComplaintRequest	true	"Rating 1-5 and feedback"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	utils.ErrorBody
//	@Failure		403		{object}	utils.ErrorBody
//	@Failure		404		{object}	utils.ErrorBody
//	@Router			/complaints/{id}/rate [put]
func (h *Handler) RateComplaint(c *gin.Context) {
	requester, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req RateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Please provide a rating between 1 and 5", err.Error()))
		return
	}

	result, err := h.rateUC.Execute(c.Request.Context(), req.ToCommand(requester, c.Param("id")))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"complaint": result})
}

// DeleteComplaint handles DELETE /complaints/:id
//
//	@Summary		Delete a complaint
//	@Tags			complaints
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string	true	"Complaint ID"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		403	{object}	utils.ErrorBody
//	@Failure		404	{object}	utils.ErrorBody
//	@Router			/complaints/{id} [delete]
func (h *Handler) DeleteComplaint(c *gin.Context) {
	requester, ok := requireIdentity(c)
	if !ok {
		return
	}

	err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteComplaintCommand{
		Requester:   requester,
		ComplaintID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"message": "Complaint deleted"})
}

// GetComplaintStats handles GET /complaints/stats
//
//	@Summary		Complaint statistics
//	@Description	Totals by status and counts per issue type
//	@Tags			complaints
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	map[string]interface{}
//	@Failure		403	{object}	utils.ErrorBody
//	@Router			/complaints/stats/overview [get]
func (h *Handler) GetComplaintStats(c *gin.Context) {
	requester, ok := requireIdentity(c)
	if !ok {
		return
	}

	result, err := h.statsUC.Execute(c.Request.Context(), usecases.GetComplaintStatsQuery{Requester: requester})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"stats": result})
}

func requireIdentity(c *gin.Context) (authorization.Identity, bool) {
	identity, ok := authorization.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Not authorized"))
		return authorization.Identity{}, false
	}
	return identity, true
}
