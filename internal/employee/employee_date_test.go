package employee_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want employee.Date
	}{
		{name: "date column", src: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), want: "2024-01-15"},
		{name: "text", src: "2024-01-15", want: "2024-01-15"},
		{name: "timestamp text", src: []byte("2024-01-15T00:00:00Z"), want: "2024-01-15"},
		{name: "null", src: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := employee.Date("stale")
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d)
		})
	}

	var d employee.Date
	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := employee.Date("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = employee.Date("2024-01-15").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", v)
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var e employee.Employee
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-01-15T00:00:00Z"}`), &e))
	assert.Equal(t, employee.Date("2024-01-15"), e.StartDate)

	require.NoError(t, json.Unmarshal([]byte(`{"startDate":null}`), &e))
	assert.Empty(t, e.StartDate)

	out, err := json.Marshal(employee.Employee{StartDate: "2024-01-15"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"startDate":"2024-01-15"`)
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, employee.Date("2024-01-15"), employee.ParseDate("2024-01-15"))
	assert.Equal(t, employee.Date("2024-01-15"), employee.ParseDate("2024-01-15T08:00:00+02:00"))
	assert.Equal(t, employee.Date("01/02/2024"), employee.ParseDate("01/02/2024"))
	assert.Empty(t, employee.ParseDate(""))
}
