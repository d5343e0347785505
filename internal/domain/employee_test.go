package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/bookflow-api/pkg/types"
)

func TestWeeklyTemplate_JSONRoundTrip(t *testing.T) {
	var tpl WeeklyTemplate
	tpl[time.Monday] = &DayHours{Start: "09:00", End: "17:00"}
	tpl[time.Saturday] = &DayHours{Start: "10:00", End: "14:00"}

	data, err := json.Marshal(tpl)
	require.NoError(t, err)

	var decoded WeeklyTemplate
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, tpl, decoded)
	assert.Nil(t, decoded.Day(time.Sunday))
	require.NotNil(t, decoded.Day(time.Monday))
	assert.Equal(t, types.TimeString("09:00"), decoded.Day(time.Monday).Start)
}

func TestWeeklyTemplate_UnmarshalMissingDaysAreClosed(t *testing.T) {
	raw := `{"monday": {"start": "09:00", "end": "17:00"}}`

	var tpl WeeklyTemplate
	require.NoError(t, json.Unmarshal([]byte(raw), &tpl))

	assert.NotNil(t, tpl.Day(time.Monday))
	for _, d := range []time.Weekday{time.Sunday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		assert.Nil(t, tpl.Day(d), "day %s must be closed", d)
	}
}

func TestWeeklyTemplate_UnmarshalExplicitNull(t *testing.T) {
	raw := `{"monday": {"start": "09:00", "end": "17:00"}, "sunday": null}`

	var tpl WeeklyTemplate
	require.NoError(t, json.Unmarshal([]byte(raw), &tpl))
	assert.Nil(t, tpl.Day(time.Sunday))
}

func TestWeeklyTemplate_UnmarshalInvalidTime(t *testing.T) {
	raw := `{"monday": {"start": "9am", "end": "17:00"}}`

	var tpl WeeklyTemplate
	assert.Error(t, json.Unmarshal([]byte(raw), &tpl))
}

func TestEmployee_Offers(t *testing.T) {
	emp := &Employee{ServiceIDs: []string{"1", "3"}}

	assert.True(t, emp.Offers("1"))
	assert.True(t, emp.Offers("3"))
	assert.False(t, emp.Offers("2"))
}

func TestEmployee_AtLocation(t *testing.T) {
	locA := "loc-a"

	everywhere := &Employee{}
	assert.True(t, everywhere.AtLocation("loc-a"))
	assert.True(t, everywhere.AtLocation("loc-b"))

	pinned := &Employee{LocationID: &locA}
	assert.True(t, pinned.AtLocation("loc-a"))
	assert.False(t, pinned.AtLocation("loc-b"))
}
