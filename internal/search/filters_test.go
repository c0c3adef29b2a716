package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hrconsole/internal/entity"
)

func marshalKeys(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	return keys
}

func TestProfileFilter_SentinelOmission(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		expectRole bool
	}{
		{"all sentinel omitted", SentinelAll, false},
		{"empty omitted", "", false},
		{"concrete role present", "MANAGER", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewProfileFilter().SetRole(tt.role).Build()
			keys := marshalKeys(t, req)

			_, hasRole := keys["role"]
			assert.Equal(t, tt.expectRole, hasRole)
			assert.NotContains(t, keys, "search", "unset filters never serialize")
		})
	}
}

func TestProfileFilter_PageResetOnFilterChange(t *testing.T) {
	filter := NewProfileFilter()
	filter.SetPage(3)
	assert.Equal(t, 3, filter.Page())

	filter.SetSearch("jane")
	assert.Equal(t, 0, filter.Page(), "filter change returns to the first page")

	filter.SetPage(2)
	filter.SetRole("MANAGER")
	assert.Equal(t, 0, filter.Page())

	filter.SetPage(2)
	filter.SetSort("email", entity.SortDescending)
	assert.Equal(t, 0, filter.Page(), "sort change also resets")

	filter.SetPage(4)
	assert.Equal(t, 4, filter.Page(), "explicit paging is the only move that sticks")
}

func TestProfileFilter_Build(t *testing.T) {
	req := NewProfileFilter().
		SetSearch("jane").
		SetRole("MANAGER").
		SetDepartment("Engineering").
		SetPage(2).
		Build()

	require.NotNil(t, req.Search)
	assert.Equal(t, "jane", *req.Search)
	require.NotNil(t, req.Role)
	assert.Equal(t, entity.RoleManager, *req.Role)
	require.NotNil(t, req.Department)
	assert.Equal(t, "Engineering", *req.Department)
	assert.Nil(t, req.ManagerID)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, entity.DefaultPageSize, req.Size)
}

func TestFeedbackFilter(t *testing.T) {
	filter := NewFeedbackFilter()
	filter.SetStatus(SentinelAll)
	assert.Nil(t, filter.Build().Status)

	filter.SetStatus("PENDING")
	req := filter.Build()
	require.NotNil(t, req.Status)
	assert.Equal(t, entity.FeedbackPending, *req.Status)

	filter.SetPage(5)
	filter.SetContentContains("great")
	assert.Equal(t, 0, filter.Page())
}

func TestNormalizeSelector(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"sentinel kept", "all", SentinelAll},
		{"uppercased sentinel maps back", "ALL", SentinelAll},
		{"mixed-case sentinel maps back", "All", SentinelAll},
		{"lowercase value uppercased", "pending", "PENDING"},
		{"canonical value untouched", "SICK_LEAVE", "SICK_LEAVE"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSelector(tt.value))
		})
	}
}

func TestAbsenceFilter_NormalizedSentinelOmitted(t *testing.T) {
	req := NewAbsenceFilter().
		SetStatus(NormalizeSelector(SentinelAll)).
		SetType(NormalizeSelector(SentinelAll)).
		Build()

	assert.Nil(t, req.Status, "a normalized sentinel must never reach the wire")
	assert.Nil(t, req.Type)
}

func TestAbsenceFilter(t *testing.T) {
	filter := NewAbsenceFilter()
	filter.SetStatus(SentinelAll)
	filter.SetType(SentinelAll)

	req := filter.Build()
	assert.Nil(t, req.Status)
	assert.Nil(t, req.Type)

	filter.SetStatus("APPROVED")
	filter.SetType("VACATION")
	req = filter.Build()
	require.NotNil(t, req.Status)
	assert.Equal(t, entity.AbsenceApproved, *req.Status)
	require.NotNil(t, req.Type)
	assert.Equal(t, entity.AbsenceVacation, *req.Type)

	keys := marshalKeys(t, NewAbsenceFilter().Build())
	assert.NotContains(t, keys, "status")
	assert.NotContains(t, keys, "type")
	assert.NotContains(t, keys, "userId")
	assert.Contains(t, keys, "page")
	assert.Contains(t, keys, "size")
}
