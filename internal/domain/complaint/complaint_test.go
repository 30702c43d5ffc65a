package complaint

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func fixedSID() (string, error) {
	return "cmp_test00000001", nil
}

func testLocation(t *testing.T) vo.Location {
	t.Helper()
	loc, err := vo.NewLocation("221B Baker Street", 51.5237, -0.1585)
	require.NoError(t, err)
	return loc
}

func newValidComplaint(t *testing.T) *Complaint {
	t.Helper()
	c, err := NewComplaint(1, vo.IssueTypePothole, "Deep pothole on the main road", testLocation(t), nil, fixedSID)
	require.NoError(t, err)
	return c
}

func statusPtr(s vo.ComplaintStatus) *vo.ComplaintStatus { return &s }
func deptPtr(d vo.Department) *vo.Department             { return &d }
func priorityPtr(p vo.Priority) *vo.Priority             { return &p }
func uintPtr(v uint) *uint                               { return &v }
func strPtr(s string) *string                            { return &s }

// ---------------------------------------------------------------------------
// Constructor
// ---------------------------------------------------------------------------

func TestNewComplaint_Defaults(t *testing.T) {
	c := newValidComplaint(t)

	assert.Equal(t, "cmp_test00000001", c.SID())
	assert.Equal(t, uint(1), c.CitizenID())
	assert.Equal(t, vo.StatusPending, c.Status())
	assert.Equal(t, vo.PriorityMedium, c.Priority())
	assert.Nil(t, c.AssignedDepartment())
	assert.Nil(t, c.AssignedOfficerID())
	assert.Nil(t, c.ResolutionNotes())
	assert.Nil(t, c.CompletedAt())
	assert.Nil(t, c.Rating())
	assert.Nil(t, c.Image())
	assert.Empty(t, c.HumanID())
	assert.False(t, c.CreatedAt().IsZero())
}

func TestNewComplaint_Validation(t *testing.T) {
	loc := testLocation(t)

	tests := []struct {
		name        string
		citizenID   uint
		issueType   vo.IssueType
		description string
		location    vo.Location
		wantErr     string
	}{
		{"missing citizen", 0, vo.IssueTypeGarbage, "Overflowing bins again", loc, "citizen ID is required"},
		{"bad issue type", 1, vo.IssueType("graffiti"), "Paint on the wall here", loc, "invalid issue type: graffiti"},
		{"description too short", 1, vo.IssueTypeGarbage, "short", loc, "description must be at least 10 characters"},
		{"short after trim", 1, vo.IssueTypeGarbage, "   nine chr   ", loc, "description must be at least 10 characters"},
		{"description too long", 1, vo.IssueTypeGarbage, strings.Repeat("x", 5001), loc, "description exceeds maximum length of 5000 characters"},
		{"missing location", 1, vo.IssueTypeGarbage, "Overflowing bins again", vo.Location{}, "location is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewComplaint(tt.citizenID, tt.issueType, tt.description, tt.location, nil, fixedSID)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestNewComplaint_DescriptionBoundary(t *testing.T) {
	c, err := NewComplaint(1, vo.IssueTypeOther, "0123456789", testLocation(t), nil, fixedSID)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusPending, c.Status())
}

func TestNewComplaint_EmptyImageIsNil(t *testing.T) {
	c, err := NewComplaint(1, vo.IssueTypeOther, "0123456789", testLocation(t), strPtr(""), fixedSID)
	require.NoError(t, err)
	assert.Nil(t, c.Image())
}

func TestNewComplaint_SIDGeneratorFailure(t *testing.T) {
	_, err := NewComplaint(1, vo.IssueTypeOther, "0123456789", testLocation(t), nil, func() (string, error) {
		return "", errors.New("entropy exhausted")
	})
	assert.ErrorContains(t, err, "entropy exhausted")
}

// ---------------------------------------------------------------------------
// Write-once identifiers
// ---------------------------------------------------------------------------

func TestAssignHumanID_Once(t *testing.T) {
	c := newValidComplaint(t)

	require.NoError(t, c.AssignHumanID("CT17000000000000001"))
	assert.ErrorIs(t, c.AssignHumanID("CT17000000000000002"), ErrHumanIDAlreadyAssigned)
	assert.Equal(t, "CT17000000000000001", c.HumanID())
}

func TestAssignHumanID_Empty(t *testing.T) {
	c := newValidComplaint(t)
	assert.Error(t, c.AssignHumanID(""))
}

func TestSetID_Once(t *testing.T) {
	c := newValidComplaint(t)

	require.NoError(t, c.SetID(5))
	assert.ErrorIs(t, c.SetID(6), ErrIDAlreadyAssigned)
	assert.Equal(t, uint(5), c.ID())
}

func TestIsOwnedBy(t *testing.T) {
	c := newValidComplaint(t)
	assert.True(t, c.IsOwnedBy(1))
	assert.False(t, c.IsOwnedBy(2))
	assert.False(t, c.IsOwnedBy(0))
}

// ---------------------------------------------------------------------------
// Status patch
// ---------------------------------------------------------------------------

func TestApplyStatusPatch_ResolvedStampsCompletedAt(t *testing.T) {
	c := newValidComplaint(t)
	now := c.CreatedAt().Add(time.Hour)

	require.NoError(t, c.ApplyStatusPatch(StatusPatch{Status: statusPtr(vo.StatusResolved)}, now))

	assert.Equal(t, vo.StatusResolved, c.Status())
	require.NotNil(t, c.CompletedAt())
	assert.Equal(t, now, *c.CompletedAt())
	assert.False(t, c.CompletedAt().Before(c.CreatedAt()))
}

func TestApplyStatusPatch_CompletedAtSurvivesReopen(t *testing.T) {
	c := newValidComplaint(t)
	resolvedAt := c.CreatedAt().Add(time.Hour)

	require.NoError(t, c.ApplyStatusPatch(StatusPatch{Status: statusPtr(vo.StatusResolved)}, resolvedAt))
	require.NoError(t, c.ApplyStatusPatch(StatusPatch{Status: statusPtr(vo.StatusPending)}, resolvedAt.Add(time.Hour)))

	assert.Equal(t, vo.StatusPending, c.Status())
	require.NotNil(t, c.CompletedAt())
	assert.Equal(t, resolvedAt, *c.CompletedAt())
}

func TestApplyStatusPatch_AnyTransitionAllowed(t *testing.T) {
	for _, from := range vo.AllStatuses() {
		for _, to := range vo.AllStatuses() {
			c := newValidComplaint(t)
			require.NoError(t, c.ApplyStatusPatch(StatusPatch{Status: statusPtr(from)}, time.Now()))
			assert.NoError(t, c.ApplyStatusPatch(StatusPatch{Status: statusPtr(to)}, time.Now()), "%s -> %s", from, to)
			assert.Equal(t, to, c.Status())
		}
	}
}

func TestApplyStatusPatch_PartialLeavesOthersUntouched(t *testing.T) {
	c := newValidComplaint(t)
	now := time.Now().UTC()

	require.NoError(t, c.ApplyStatusPatch(StatusPatch{
		AssignedDepartment: deptPtr(vo.DepartmentRoads),
		AssignedOfficerID:  uintPtr(9),
	}, now))

	assert.Equal(t, vo.StatusPending, c.Status())
	assert.Equal(t, vo.PriorityMedium, c.Priority())
	assert.Nil(t, c.CompletedAt())
	require.NotNil(t, c.AssignedDepartment())
	assert.Equal(t, vo.DepartmentRoads, *c.AssignedDepartment())
	assert.Equal(t, uint(9), *c.AssignedOfficerID())

	require.NoError(t, c.ApplyStatusPatch(StatusPatch{
		Priority:        priorityPtr(vo.PriorityHigh),
		ResolutionNotes: strPtr("crew scheduled"),
	}, now))

	assert.Equal(t, vo.DepartmentRoads, *c.AssignedDepartment())
	assert.Equal(t, vo.PriorityHigh, c.Priority())
	assert.Equal(t, "crew scheduled", *c.ResolutionNotes())
}

func TestApplyStatusPatch_InvalidPatchChangesNothing(t *testing.T) {
	c := newValidComplaint(t)

	err := c.ApplyStatusPatch(StatusPatch{
		Status:   statusPtr(vo.StatusResolved),
		Priority: priorityPtr(vo.Priority("urgent")),
	}, time.Now())

	require.Error(t, err)
	assert.Equal(t, vo.StatusPending, c.Status())
	assert.Nil(t, c.CompletedAt())
}

func TestApplyStatusPatch_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		patch StatusPatch
	}{
		{"status", StatusPatch{Status: statusPtr("closed")}},
		{"department", StatusPatch{AssignedDepartment: deptPtr("parks")}},
		{"priority", StatusPatch{Priority: priorityPtr("urgent")}},
		{"zero officer", StatusPatch{AssignedOfficerID: uintPtr(0)}},
		{"notes too long", StatusPatch{ResolutionNotes: strPtr(strings.Repeat("n", 5001))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newValidComplaint(t)
			assert.Error(t, c.ApplyStatusPatch(tt.patch, time.Now()))
		})
	}
}

// ---------------------------------------------------------------------------
// Image
// ---------------------------------------------------------------------------

func TestAttachImage(t *testing.T) {
	c, err := NewComplaint(1, vo.IssueTypePothole, "Deep pothole on the main road", testLocation(t), strPtr("data:image/png;base64,iVBORw0KGgo="), fixedSID)
	require.NoError(t, err)

	require.NoError(t, c.AttachImage("https://images.example.com/complaints/cmp_test00000001"))
	require.NotNil(t, c.Image())
	assert.Equal(t, "https://images.example.com/complaints/cmp_test00000001", *c.Image())

	assert.Error(t, c.AttachImage(""))

	require.NoError(t, c.SetID(5))
	assert.Error(t, c.AttachImage("https://images.example.com/other"))
}

// ---------------------------------------------------------------------------
// Rating
// ---------------------------------------------------------------------------

func TestRate_AllowedWhilePending(t *testing.T) {
	c := newValidComplaint(t)
	r, err := vo.NewRating(4, "quick response")
	require.NoError(t, err)

	c.Rate(r, time.Now())

	require.NotNil(t, c.Rating())
	assert.Equal(t, 4, c.Rating().Value())
	assert.Equal(t, vo.StatusPending, c.Status())
}

// ---------------------------------------------------------------------------
// Reconstruct
// ---------------------------------------------------------------------------

func TestReconstructComplaint(t *testing.T) {
	now := time.Now().UTC()
	dept := vo.DepartmentWater
	officer := uint(3)

	c, err := ReconstructComplaint(
		10, "cmp_abc", "CT17000000000000010", 2,
		vo.IssueTypeWaterLeakage, "Pipe burst under the road", testLocation(t), nil,
		vo.StatusInProgress, vo.PriorityHigh,
		&dept, &officer, nil, nil, nil,
		now, now,
	)
	require.NoError(t, err)
	assert.Equal(t, uint(10), c.ID())
	assert.Equal(t, vo.StatusInProgress, c.Status())
	assert.ErrorIs(t, c.AssignHumanID("CT1"), ErrHumanIDAlreadyAssigned)

	_, err = ReconstructComplaint(
		0, "cmp_abc", "CT1", 2,
		vo.IssueTypeWaterLeakage, "Pipe burst under the road", testLocation(t), nil,
		vo.StatusInProgress, vo.PriorityHigh,
		nil, nil, nil, nil, nil,
		now, now,
	)
	assert.Error(t, err)
}
