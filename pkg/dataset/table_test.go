package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	var obs []Observation
	for _, code := range []string{"US", "KE", "DE"} {
		for _, year := range []int{2000, 2010, 2020} {
			obs = append(obs, Observation{
				CountryCode: code,
				CountryName: code + " name",
				Year:        year,
				Values:      map[string]*float64{},
			})
		}
	}
	table, err := NewTable(obs, []string{"GDP per capita (current US$)"})
	require.NoError(t, err)
	return table
}

func TestNewTableRejectsDuplicateKey(t *testing.T) {
	obs := []Observation{
		{CountryCode: "US", Year: 2020},
		{CountryCode: "US", Year: 2020},
	}
	_, err := NewTable(obs, nil)
	require.Error(t, err)
}

func TestFilterEmptySelectionIsIdentity(t *testing.T) {
	table := testTable(t)
	assert.Same(t, table, table.Filter(nil))
	assert.Same(t, table, table.Filter([]string{}))
}

func TestFilterRestrictsToSelection(t *testing.T) {
	table := testTable(t)
	filtered := table.Filter([]string{"US", "KE"})

	require.Equal(t, 6, filtered.Len())
	for _, o := range filtered.Observations() {
		assert.Contains(t, []string{"US", "KE"}, o.CountryCode)
	}
}

func TestFilterFullCountrySetIsNoOp(t *testing.T) {
	table := testTable(t)
	var codes []string
	for _, c := range table.Countries() {
		codes = append(codes, c.Code)
	}

	filtered := table.Filter(codes)
	assert.Equal(t, table.Observations(), filtered.Observations())
}

func TestYearsSortedDistinct(t *testing.T) {
	table := testTable(t)
	assert.Equal(t, []int{2000, 2010, 2020}, table.Years())
}

func TestByYear(t *testing.T) {
	table := testTable(t)
	rows := table.ByYear(2010)
	require.Len(t, rows, 3)
	for _, o := range rows {
		assert.Equal(t, 2010, o.Year)
	}
	assert.Empty(t, table.ByYear(1999))
}

func TestCountriesFirstSeenOrder(t *testing.T) {
	table := testTable(t)
	countries := table.Countries()
	require.Len(t, countries, 3)
	assert.Equal(t, "US", countries[0].Code)
	assert.Equal(t, "KE", countries[1].Code)
	assert.Equal(t, "DE", countries[2].Code)
}
