package engine

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdash/internal/models"
	apperrors "socialdash/pkg/errors"
)

const sampleCSV = `period,company_name,followers,er_percent,avg_likes,avg_comments,posting_frequency
2025-10,Kafolat,1200,1.50,40.5,3.0,12
2025-10,Alskom,800,2.25,22,1.5,8
2025-11,Kafolat,1300,1.75,44.0,3.5,14
2025-11,Alskom,820,2.00,20.0,1.0,9
`

const sampleJSON = `{
  "updated_at": "2025-11-30",
  "periods": [
    {"key": "2025-10", "label": "October 2025", "records": [
      {"company_name": "Kafolat", "followers": 1200, "er_percent": 1.5, "avg_likes": 40.5, "avg_comments": 3, "posting_frequency": 12},
      {"company_name": "Alskom", "followers": 800, "er_percent": 2.25, "avg_likes": 22, "avg_comments": 1.5, "posting_frequency": 8}
    ]},
    {"key": "2025-11", "label": "November 2025", "records": [
      {"company_name": "Kafolat", "followers": 1300, "er_percent": 1.75, "avg_likes": 44, "avg_comments": 3.5, "posting_frequency": 14},
      {"company_name": "Alskom", "followers": 820, "er_percent": 2, "avg_likes": 20, "avg_comments": 1, "posting_frequency": 9}
    ]}
  ]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	ds, err := LoadFile(writeTemp(t, "data.csv", sampleCSV), true)
	require.NoError(t, err)

	assert.Equal(t, []PeriodKey{"2025-10", "2025-11"}, ds.Periods().Keys())

	oct := ds.Records("2025-10")
	require.Len(t, oct, 2)
	assert.Equal(t, "Kafolat", oct[0].Name)
	assert.Equal(t, int64(1200), oct[0].Followers)
	assert.InDelta(t, 1.5, oct[0].EngagementRate, 1e-9)
	assert.InDelta(t, 40.5, oct[0].AvgLikes, 1e-9)
	assert.InDelta(t, 22.0, oct[1].AvgLikes, 1e-9)
	assert.InDelta(t, 8.0, oct[1].PostingFrequency, 1e-9)
}

func TestLoadJSONMatchesCSV(t *testing.T) {
	fromCSV, err := LoadCSV([]byte(sampleCSV))
	require.NoError(t, err)
	fromJSON, err := LoadFile(writeTemp(t, "data.json", sampleJSON), true)
	require.NoError(t, err)

	assert.Equal(t, fromCSV.Periods().Keys(), fromJSON.Periods().Keys())
	for _, k := range fromCSV.Periods().Keys() {
		assert.InDeltaSlice(t, followersOf(fromCSV.Records(k)), followersOf(fromJSON.Records(k)), 0)
		for i, r := range fromCSV.Records(k) {
			j := fromJSON.Records(k)[i]
			assert.Equal(t, r.Name, j.Name)
			assert.InDelta(t, r.EngagementRate, j.EngagementRate, 1e-9)
			assert.InDelta(t, r.AvgComments, j.AvgComments, 1e-9)
		}
	}
	assert.Equal(t, "November 2025", fromJSON.Periods().Label("2025-11"))
	assert.Equal(t, "2025-11-30", fromJSON.UpdatedAt)
}

func followersOf(records []models.EntityRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.Followers)
	}
	return out
}

func TestLoadCSVErrors(t *testing.T) {
	header := "period,company_name,followers,er_percent,avg_likes,avg_comments,posting_frequency\n"
	tests := map[string]string{
		"columns":   "2025-10,Kafolat,1200\n",
		"followers": "2025-10,Kafolat,12x0,1.5,1,1,1\n",
		"er":        "2025-10,Kafolat,1200,abc,1,1,1\n",
		"empty":     "2025-10,Kafolat,1200,,1,1,1\n",
		"overflow":  "2025-10,Kafolat,18446744073709551617,1,1,1,1\n",
		"quote":     "2025-10,\"Kafolat,1200,1,1,1,1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCSV([]byte(header + body))
			var verr *apperrors.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestLoadCSVQuotedNames(t *testing.T) {
	content := "period,company_name,followers,er_percent,avg_likes,avg_comments,posting_frequency\n" +
		"2025-10,\"Kafolat, Tashkent\",1200,1.5,40,3,12\n" +
		"2025-10,\"Alskom\",800,2,22,1.5,8\n"

	ds, err := LoadCSV([]byte(content))
	require.NoError(t, err)

	oct := ds.Records("2025-10")
	require.Len(t, oct, 2)
	assert.Equal(t, "Kafolat, Tashkent", oct[0].Name)
	assert.Equal(t, int64(1200), oct[0].Followers)
	assert.Equal(t, "Alskom", oct[1].Name)
}

func TestLoadFileValidation(t *testing.T) {
	dup := "period,company_name,followers,er_percent,avg_likes,avg_comments,posting_frequency\n" +
		"2025-10,Kafolat,1,1,1,1,1\n" +
		"2025-10,Kafolat,2,1,1,1,1\n"
	path := writeTemp(t, "dup.csv", dup)

	_, err := LoadFile(path, true)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "company_name", verr.Field)

	// without validation the duplicate loads as-is
	ds, err := LoadFile(path, false)
	require.NoError(t, err)
	assert.Len(t, ds.Records("2025-10"), 2)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"), true)
	var lerr *apperrors.LoadError
	require.ErrorAs(t, err, &lerr)

	_, err = LoadFile(writeTemp(t, "data.xml", "<x/>"), true)
	require.ErrorAs(t, err, &lerr)

	_, err = LoadFile(writeTemp(t, "bad.json", "{"), true)
	require.ErrorAs(t, err, &lerr)
}

func TestLoadJSONDuplicatePeriod(t *testing.T) {
	_, err := LoadJSON([]byte(`{"periods":[{"key":"a"},{"key":"a"}]}`))
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateNegative(t *testing.T) {
	ds := NewDataset(NewPeriods([]PeriodKey{"p"}, nil),
		map[PeriodKey][]models.EntityRecord{"p": {{Name: "A", Followers: -1}}}, "")

	err := Validate(ds)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "followers", verr.Field)
}

func TestSmallParsers(t *testing.T) {
	i, ok := parseInt([]byte("99"))
	assert.True(t, ok)
	assert.Equal(t, int64(99), i)

	i, ok = parseInt([]byte("-12"))
	assert.True(t, ok)
	assert.Equal(t, int64(-12), i)

	_, ok = parseInt([]byte("-"))
	assert.False(t, ok)

	i, ok = parseInt([]byte("9223372036854775807"))
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), i)

	for _, big := range []string{"9223372036854775808", "18446744073709551617", "-99999999999999999999"} {
		_, ok = parseInt([]byte(big))
		assert.False(t, ok, big)
	}

	f, ok := parseFloat([]byte("123.45"))
	assert.True(t, ok)
	assert.InDelta(t, 123.45, f, 1e-9)

	f, ok = parseFloat([]byte("7"))
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)

	for _, bad := range []string{"", ".", "1.2.3", "1e5", "-"} {
		_, ok := parseFloat([]byte(bad))
		assert.False(t, ok, bad)
	}
}
