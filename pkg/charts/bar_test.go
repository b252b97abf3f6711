package charts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBarRanksDescending(t *testing.T) {
	fig := BuildBar(threeCountries(t), testCfg)

	require.Len(t, fig.Data, 1)
	trace := fig.Data[0]
	assert.Equal(t, "bar", trace.Type)
	assert.Equal(t, []any{"Name KE", "Name DE", "Name US"}, trace.X)
	assert.Equal(t, []float64{90, 50, 10}, trace.Y)
	assert.Equal(t, [][]string{{"KE", "Name KE"}, {"DE", "Name DE"}, {"US", "Name US"}}, trace.CustomData)

	assert.Equal(t, -45, fig.Layout.XAxis.TickAngle)
	assert.Equal(t, "event+select", fig.Layout.ClickMode)
}

func TestBuildBarSkipsMissingValues(t *testing.T) {
	table := buildTable(t, []obsSpec{
		{code: "US", name: "US", year: 2020, water: fptr(50)},
		{code: "KE", name: "KE", year: 2020}, // no water value reported
		{code: "DE", name: "DE", year: 2019, water: fptr(99)}, // wrong year
	})

	fig := BuildBar(table, testCfg)
	require.Len(t, fig.Data[0].Y, 1)
	assert.Equal(t, []any{"US"}, fig.Data[0].X)
}

func TestBuildBarTruncatesToTopFifteen(t *testing.T) {
	var specs []obsSpec
	for i := 0; i < 20; i++ {
		code := fmt.Sprintf("C%02d", i)
		specs = append(specs, obsSpec{
			code: code, name: code, year: 2020, water: fptr(float64(i)),
		})
	}
	fig := BuildBar(buildTable(t, specs), testCfg)

	trace := fig.Data[0]
	require.Len(t, trace.Y, 15)
	assert.Equal(t, 19.0, trace.Y[0])
	assert.Equal(t, 5.0, trace.Y[14])
}

func TestBuildBarStableTies(t *testing.T) {
	table := buildTable(t, []obsSpec{
		{code: "AA", name: "AA", year: 2020, water: fptr(80)},
		{code: "BB", name: "BB", year: 2020, water: fptr(80)},
		{code: "CC", name: "CC", year: 2020, water: fptr(90)},
	})

	fig := BuildBar(table, testCfg)
	// Ties keep original table order.
	assert.Equal(t, []any{"CC", "AA", "BB"}, fig.Data[0].X)
}

func TestBuildBarEmptyTable(t *testing.T) {
	fig := BuildBar(buildTable(t, nil), testCfg)
	require.Len(t, fig.Data, 1)
	assert.Empty(t, fig.Data[0].Y)
}
