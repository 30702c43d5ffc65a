package complaint

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictrack/civictrack/internal/application/complaint/dto"
	"github.com/civictrack/civictrack/internal/application/complaint/usecases"
	"github.com/civictrack/civictrack/internal/interfaces/http/handlers/testutil"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateUC struct {
	got    usecases.CreateComplaintCommand
	result *dto.ComplaintDTO
	err    error
}

func (m *mockCreateUC) Execute(_ context.Context, cmd usecases.CreateComplaintCommand) (*dto.ComplaintDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListUC struct {
	got    usecases.ListComplaintsQuery
	result *usecases.ListComplaintsResult
	err    error
}

func (m *mockListUC) Execute(_ context.Context, query usecases.ListComplaintsQuery) (*usecases.ListComplaintsResult, error) {
	m.got = query
	return m.result, m.err
}

type mockGetUC struct {
	got    usecases.GetComplaintQuery
	result *dto.ComplaintDTO
	err    error
}

func (m *mockGetUC) Execute(_ context.Context, query usecases.GetComplaintQuery) (*dto.ComplaintDTO, error) {
	m.got = query
	return m.result, m.err
}

type mockUpdateUC struct {
	got    usecases.UpdateComplaintStatusCommand
	result *dto.ComplaintDTO
	err    error
}

func (m *mockUpdateUC) Execute(_ context.Context, cmd usecases.UpdateComplaintStatusCommand) (*dto.ComplaintDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockRateUC struct {
	got    usecases.RateComplaintCommand
	result *dto.ComplaintDTO
	err    error
}

func (m *mockRateUC) Execute(_ context.Context, cmd usecases.RateComplaintCommand) (*dto.ComplaintDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockDeleteUC struct {
	got usecases.DeleteComplaintCommand
	err error
}

func (m *mockDeleteUC) Execute(_ context.Context, cmd usecases.DeleteComplaintCommand) error {
	m.got = cmd
	return m.err
}

type mockStatsUC struct {
	result *dto.StatsDTO
	err    error
}

func (m *mockStatsUC) Execute(_ context.Context, _ usecases.GetComplaintStatsQuery) (*dto.StatsDTO, error) {
	return m.result, m.err
}

type testDeps struct {
	createUC *mockCreateUC
	listUC   *mockListUC
	getUC    *mockGetUC
	updateUC *mockUpdateUC
	rateUC   *mockRateUC
	deleteUC *mockDeleteUC
	statsUC  *mockStatsUC
}

func newTestHandler(deps testDeps) *Handler {
	if deps.createUC == nil {
		deps.createUC = &mockCreateUC{}
	}
	if deps.listUC == nil {
		deps.listUC = &mockListUC{}
	}
	if deps.getUC == nil {
		deps.getUC = &mockGetUC{}
	}
	if deps.updateUC == nil {
		deps.updateUC = &mockUpdateUC{}
	}
	if deps.rateUC == nil {
		deps.rateUC = &mockRateUC{}
	}
	if deps.deleteUC == nil {
		deps.deleteUC = &mockDeleteUC{}
	}
	if deps.statsUC == nil {
		deps.statsUC = &mockStatsUC{}
	}
	return NewHandler(
		deps.createUC,
		deps.listUC,
		deps.getUC,
		deps.updateUC,
		deps.rateUC,
		deps.deleteUC,
		deps.statsUC,
		testutil.NewMockLogger(),
	)
}

func sampleComplaint() *dto.ComplaintDTO {
	now := time.Now().UTC()
	return &dto.ComplaintDTO{
		ID:          "cmp_abc123def456",
		ComplaintID: "CT17000000000000001",
		Citizen:     &dto.PartyDTO{ID: "usr_citizen0001", Name: "Asha"},
		IssueType:   "pothole",
		Description: "Deep pothole near the bus stop",
		Location:    dto.LocationDTO{Address: "Main St", Latitude: 12.97, Longitude: 77.59},
		Status:      "pending",
		Priority:    "medium",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

// =====================================================================
// CreateComplaint
// =====================================================================

func TestHandler_CreateComplaint_Success(t *testing.T) {
	createUC := &mockCreateUC{result: sampleComplaint()}
	handler := newTestHandler(testDeps{createUC: createUC})

	reqBody := CreateComplaintRequest{
		IssueType:   "pothole",
		Description: "Deep pothole near the bus stop",
		Address:     "Main St",
		Latitude:    floatPtr(12.97),
		Longitude:   floatPtr(77.59),
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/complaints", reqBody)
	testutil.SetAuthContext(c, 7, authorization.RoleCitizen)

	handler.CreateComplaint(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	body, err := testutil.ParseEnvelope(w)
	require.NoError(t, err)
	assert.Equal(t, true, body["success"])
	complaint, ok := body["complaint"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "CT17000000000000001", complaint["complaintId"])

	assert.Equal(t, uint(7), createUC.got.Requester.UserID)
	assert.Equal(t, authorization.RoleCitizen, createUC.got.Requester.Role)
	assert.Equal(t, 12.97, *createUC.got.Latitude)
}

func TestHandler_CreateComplaint_BindError(t *testing.T) {
	handler := newTestHandler(testDeps{})

	reqBody := map[string]string{"issueType": "pothole"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/complaints", reqBody)
	testutil.SetAuthContext(c, 7, authorization.RoleCitizen)

	handler.CreateComplaint(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, err := testutil.ParseEnvelope(w)
	require.NoError(t, err)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestHandler_CreateComplaint_NotAuthenticated(t *testing.T) {
	handler := newTestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/complaints", map[string]string{})

	handler.CreateComplaint(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_CreateComplaint_UseCaseError(t *testing.T) {
	createUC := &mockCreateUC{err: errors.NewValidationError("Description must be at least 10 characters")}
	handler := newTestHandler(testDeps{createUC: createUC})

	reqBody := CreateComplaintRequest{
		IssueType:   "pothole",
		Description: "short",
		Address:     "Main St",
		Latitude:    floatPtr(0),
		Longitude:   floatPtr(0),
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/complaints", reqBody)
	testutil.SetAuthContext(c, 7, authorization.RoleCitizen)

	handler.CreateComplaint(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, err := testutil.ParseEnvelope(w)
	require.NoError(t, err)
	assert.Equal(t, "Description must be at least 10 characters", body["message"])
}

// =====================================================================
// ListComplaints
// =====================================================================

func TestHandler_ListComplaints_Success(t *testing.T) {
	listUC := &mockListUC{
		result: &usecases.ListComplaintsResult{
			Complaints: []*dto.ComplaintDTO{sampleComplaint()},
			Total:      11,
			Page:       2,
			Limit:      5,
			Pages:      3,
		},
	}
	handler := newTestHandler(testDeps{listUC: listUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/complaints", nil)
	testutil.SetQueryParams(c, map[string]string{
		"status":    "pending",
		"issueType": "pothole",
		"page":      "2",
		"limit":     "5",
	})
	testutil.SetAuthContext(c, 3, authorization.RoleAdmin)

	handler.ListComplaints(c)

	assert.Equal(t, http.StatusOK, w.Code)

	body, err := testutil.ParseEnvelope(w)
	require.NoError(t, err)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(11), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(3), body["pages"])
	assert.Len(t, body["complaints"], 1)

	assert.Equal(t, "pending", listUC.got.Status)
	assert.Equal(t, "pothole", listUC.got.IssueType)
	assert.Equal(t, 2, listUC.got.Page)
	assert.Equal(t, 5, listUC.got.Limit)
}

func TestHandler_ListComplaints_DefaultsPagination(t *testing.T) {
	listUC := &mockListUC{
		result: &usecases.ListComplaintsResult{Complaints: []*dto.ComplaintDTO{}, Page: 1, Limit: 10},
	}
	handler := newTestHandler(testDeps{listUC: listUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/complaints", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "abc", "limit": "1000"})
	testutil.SetAuthContext(c, 7, authorization.RoleCitizen)

	handler.ListComplaints(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, listUC.got.Page)
	assert.Equal(t, 100, listUC.got.Limit)

	body, err := testutil.ParseEnvelope(w)
	require.NoError(t, err)
	assert.Equal(t, float64(0), body["pages"])
}

func TestHandler_ListComplaints_InvalidFilter(t *testing.T) {
	listUC := &mockListUC{err: errors.NewValidationError("Invalid status filter")}
	handler := newTestHandler(testDeps{listUC: listUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/complaints", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "closed"})
	testutil.SetAuthContext(c, 7, authorization.RoleCitizen)

	handler.ListComplaints(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// GetComplaint
// =====================================================================

func TestHandler_GetComplaint_Success(t *testing.T) {
	getUC := &mockGetUC{result: sampleComplaint()}
	handler := newTestHandler(testDeps{getUC: getUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/complaints/cmp_abc123def456", nil)
	testutil.SetURLParam(c, "id", "cmp_abc123def456")
	testutil.SetAuthContext(c, 7, authorization.RoleCitizen)

	handler.GetComplaint(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cmp_abc123def456", getUC.got.ComplaintID)

	body, err := testutil.ParseEnvelope(w)
	require.NoError(t, err)
	assert.Contains(t, body, "complaint")
}

func TestHandler_GetComplaint_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", errors.NewNotFoundError("Complaint not found"), http.StatusNotFound},
		{"forbidden", errors.NewForbiddenError("Not authorized to view this complaint"), http.StatusForbidden},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(testDeps{getUC: &mockGetUC{err: tt.err}})

			c, w := testutil.NewTestContext(http.MethodGet, "/api/complaints/cmp_x", nil)
			testutil.SetURLParam(c, "id", "cmp_x")
			testutil.SetAuthContext(c, 7, authorization.RoleCitizen)

			handler.GetComplaint(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			body, err := testutil.ParseEnvelope(w)
			require.NoError(t, err)
			assert.Equal(t, false, body["success"])
		})
	}
}

// =====================================================================
// UpdateComplaintStatus
// =====================================================================

func TestHandler_UpdateComplaintStatus_PassesOnlyProvidedFields(t *testing.T) {
	updateUC := &mockUpdateUC{result: sampleComplaint()}
	handler := newTestHandler(testDeps{updateUC: updateUC})

	reqBody := map[string]string{"status": "resolved", "resolutionNotes": "Patched"}
	c, w := testutil.NewTestContext(http.MethodPut, "/api/complaints/cmp_x/status", reqBody)
	testutil.SetURLParam(c, "id", "cmp_x")
	testutil.SetAuthContext(c, 2, authorization.RoleDepartmentOfficer)

	handler.UpdateComplaintStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, updateUC.got.Status)
	assert.Equal(t, "resolved", *updateUC.got.Status)
	require.NotNil(t, updateUC.got.ResolutionNotes)
	assert.Nil(t, updateUC.got.Priority)
	assert.Nil(t, updateUC.got.AssignedOfficer)
	assert.Nil(t, updateUC.got.AssignedDepartment)
	assert.Equal(t, "cmp_x", updateUC.got.ComplaintID)
}

func TestHandler_UpdateComplaintStatus_MalformedBody(t *testing.T) {
	handler := newTestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPut, "/api/complaints/cmp_x/status", []int{1, 2})
	testutil.SetURLParam(c, "id", "cmp_x")
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	handler.UpdateComplaintStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// RateComplaint
// =====================================================================

func TestHandler_RateComplaint_Success(t *testing.T) {
	rateUC := &mockRateUC{result: sampleComplaint()}
	handler := newTestHandler(testDeps{rateUC: rateUC})

	reqBody := RateComplaintRequest{Rating: intPtr(4), Feedback: "Quick fix"}
	c, w := testutil.NewTestContext(http.MethodPut, "/api/complaints/cmp_x/rate", reqBody)
	testutil.SetURLParam(c, "id", "cmp_x")
	testutil.SetAuthContext(c, 7, authorization.RoleCitizen)

	handler.RateComplaint(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, rateUC.got.Rating)
	assert.Equal(t, 4, *rateUC.got.Rating)
	assert.Equal(t, "Quick fix", rateUC.got.Feedback)
}

func TestHandler_RateComplaint_Forbidden(t *testing.T) {
	rateUC := &mockRateUC{err: errors.NewForbiddenError("Not authorized to rate this complaint")}
	handler := newTestHandler(testDeps{rateUC: rateUC})

	reqBody := RateComplaintRequest{Rating: intPtr(5)}
	c, w := testutil.NewTestContext(http.MethodPut, "/api/complaints/cmp_x/rate", reqBody)
	testutil.SetURLParam(c, "id", "cmp_x")
	testutil.SetAuthContext(c, 8, authorization.RoleCitizen)

	handler.RateComplaint(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// DeleteComplaint
// =====================================================================

func TestHandler_DeleteComplaint_Success(t *testing.T) {
	deleteUC := &mockDeleteUC{}
	handler := newTestHandler(testDeps{deleteUC: deleteUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/complaints/cmp_x", nil)
	testutil.SetURLParam(c, "id", "cmp_x")
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	handler.DeleteComplaint(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cmp_x", deleteUC.got.ComplaintID)

	body, err := testutil.ParseEnvelope(w)
	require.NoError(t, err)
	assert.Equal(t, "Complaint deleted", body["message"])
}

func TestHandler_DeleteComplaint_NotFound(t *testing.T) {
	handler := newTestHandler(testDeps{deleteUC: &mockDeleteUC{err: errors.NewNotFoundError("Complaint not found")}})

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/complaints/cmp_x", nil)
	testutil.SetURLParam(c, "id", "cmp_x")
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	handler.DeleteComplaint(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// GetComplaintStats
// =====================================================================

func TestHandler_GetComplaintStats_Success(t *testing.T) {
	statsUC := &mockStatsUC{
		result: &dto.StatsDTO{
			TotalComplaints: 3,
			Pending:         2,
			Resolved:        1,
			IssueTypeStats:  []dto.IssueTypeStatDTO{{ID: "pothole", Count: 3}},
		},
	}
	handler := newTestHandler(testDeps{statsUC: statsUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/complaints/stats/overview", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	handler.GetComplaintStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	body, err := testutil.ParseEnvelope(w)
	require.NoError(t, err)
	stats, ok := body["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), stats["totalComplaints"])
	issueTypes, ok := stats["issueTypeStats"].([]interface{})
	require.True(t, ok)
	require.Len(t, issueTypes, 1)
	assert.Equal(t, "pothole", issueTypes[0].(map[string]interface{})["_id"])
}

func TestUpdateStatusRequest_ToCommand(t *testing.T) {
	req := UpdateStatusRequest{AssignedOfficer: strPtr("usr_officer0001")}
	identity := authorization.Identity{UserID: 1, Role: authorization.RoleAdmin}

	cmd := req.ToCommand(identity, "cmp_x")

	assert.Equal(t, identity, cmd.Requester)
	assert.Equal(t, "usr_officer0001", *cmd.AssignedOfficer)
	assert.Nil(t, cmd.Status)
}
