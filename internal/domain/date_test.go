package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var m Measurement
	require.NoError(t, json.Unmarshal([]byte(`{"tmlRecordId":3,"measurementDate":"2024-06-01","corrosionRate":null}`), &m))
	assert.Equal(t, NewDate(2024, time.June, 1), m.MeasurementDate)
	assert.Nil(t, m.CorrosionRate)

	out, err := json.Marshal(m.MeasurementDate)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01"`, string(out))
}

func TestDateUnmarshalRejectsTimestamps(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"2024-06-01T10:00:00Z"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240601`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 1, 23, 30, 0, 0, time.FixedZone("x", 3600))))
	assert.Equal(t, "2024-01-01", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())

	require.NoError(t, d.Scan("2023-02-03 00:00:00"))
	assert.Equal(t, "2023-02-03", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2024, time.March, 9).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", v)
}

func TestAPIKeySecretNotSerialized(t *testing.T) {
	out, err := json.Marshal(APIKey{ID: 1, APIKey: "secret", IsActive: true})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
}
