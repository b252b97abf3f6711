package charts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/worldpulse/devdash/pkg/dataset"
)

var testCfg = Config{
	GDPField:   "gdp",
	LifeField:  "life",
	WaterField: "water",
	StartYear:  2000,
	EndYear:    2020,
}

func fptr(v float64) *float64 { return &v }

type obsSpec struct {
	code, name string
	year       int
	gdp, life  *float64
	water      *float64
}

func buildTable(t *testing.T, specs []obsSpec) *dataset.Table {
	t.Helper()
	obs := make([]dataset.Observation, 0, len(specs))
	for _, s := range specs {
		obs = append(obs, dataset.Observation{
			CountryCode: s.code,
			CountryName: s.name,
			Year:        s.year,
			Values: map[string]*float64{
				"gdp":   s.gdp,
				"life":  s.life,
				"water": s.water,
			},
		})
	}
	table, err := dataset.NewTable(obs, []string{"gdp", "life", "water"})
	require.NoError(t, err)
	return table
}

// threeCountries is the canonical fixture: 3 countries over 2000/2010/2020
// with water access 10/90/50 in 2020.
func threeCountries(t *testing.T) *dataset.Table {
	t.Helper()
	var specs []obsSpec
	water := map[string]float64{"US": 10, "KE": 90, "DE": 50}
	for _, code := range []string{"US", "KE", "DE"} {
		for _, year := range []int{2000, 2010, 2020} {
			s := obsSpec{
				code: code,
				name: "Name " + code,
				year: year,
				gdp:  fptr(float64(year) * 2),
				life: fptr(70),
			}
			if year == 2020 {
				s.water = fptr(water[code])
			}
			specs = append(specs, s)
		}
	}
	return buildTable(t, specs)
}
