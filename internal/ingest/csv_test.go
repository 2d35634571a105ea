package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "time, ECG, accX, accY, accZ\n" +
		"1000, 0.12, 0.01, -0.02, 0.98\n" +
		"1001, 0.95, 0.02, -0.01, 0.97\n" +
		"1002, 0.10, 0.01, -0.02, 0.99\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Samples, 3)
	assert.True(t, result.HasAccel)

	first := result.Samples[0]
	assert.Equal(t, int64(0), first.Seq)
	assert.Equal(t, int64(1000), first.TimeTick)
	assert.InDelta(t, 0.12, first.ECG, 1e-9)
	assert.InDelta(t, 0.98, first.AccZ, 1e-9)

	assert.Equal(t, int64(2), result.Samples[2].Seq)
}

func TestParseCSVWithoutAcceleration(t *testing.T) {
	input := "time,ECG\n1,0.5\n2,0.6\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Samples, 2)
	assert.False(t, result.HasAccel)
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	var missing *MissingColumnError

	_, err := ParseCSV(strings.NewReader("time,accX\n1,0.5\n"))
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ecg", missing.Column)

	_, err = ParseCSV(strings.NewReader("ECG\n0.5\n"))
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "time", missing.Column)

	// Empty input has no header at all.
	_, err = ParseCSV(strings.NewReader(""))
	require.ErrorAs(t, err, &missing)
}

func TestParseCSVRejectsDecreasingTime(t *testing.T) {
	input := "time,ECG\n5,0.1\n4,0.2\n"

	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time counter decreased")
}

func TestParseCSVRejectsMalformedValues(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("time,ECG\nabc,0.1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ParseCSV(strings.NewReader("time,ECG\n1,notanumber\n"))
	require.Error(t, err)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	result, err := ParseCSV(strings.NewReader("time,ECG\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Samples)
}
