package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulesDefaultsToEmptyArray(t *testing.T) {
	out, err := json.Marshal(Class{ID: 1})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"schedules":[]`)

	value, err := Schedules(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestSchedulesPassThrough(t *testing.T) {
	var req CreateClassRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","subjectId":1,"schedules":[{"day":"mon","start":"08:00"}]}`), &req))
	assert.True(t, req.Schedules.IsArray())
	assert.JSONEq(t, `[{"day":"mon","start":"08:00"}]`, string(req.Schedules))

	var scanned Schedules
	require.NoError(t, scanned.Scan([]byte(`[{"day":"tue"}]`)))
	assert.JSONEq(t, `[{"day":"tue"}]`, string(scanned))
}

func TestSchedulesRejectsNonArrays(t *testing.T) {
	assert.False(t, Schedules(`{"day":"mon"}`).IsArray())
	assert.False(t, Schedules(`[`).IsArray())
	assert.False(t, Schedules(nil).IsArray())

	var req UpdateClassRequest
	require.NoError(t, json.Unmarshal([]byte(`{"schedules":null}`), &req))
	assert.Nil(t, req.Schedules)
	assert.True(t, req.Empty())
}
