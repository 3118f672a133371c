package source_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psurana/pulse-etl/etl/source"
)

func TestYearQuarter(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		year    int
		quarter int
		ok      bool
	}{
		{
			name:    "unix separators",
			path:    "data/aggregated/transaction/country/india/2023/1.json",
			year:    2023,
			quarter: 1,
			ok:      true,
		},
		{
			name:    "windows separators",
			path:    `data\aggregated\transaction\country\india\2021\4.json`,
			year:    2021,
			quarter: 4,
			ok:      true,
		},
		{
			name:    "quarter as directory segment",
			path:    "archive/2019/3/snapshot",
			year:    2019,
			quarter: 3,
			ok:      true,
		},
		{
			name:    "first valid pair wins",
			path:    "backup/2020/2/2023/4.json",
			year:    2020,
			quarter: 2,
			ok:      true,
		},
		{
			name: "no coordinates at all",
			path: "data/aggregated/transaction/country/india.json",
		},
		{
			name: "year below range",
			path: "data/2010/1.json",
		},
		{
			name: "year above range",
			path: "data/2077/1.json",
		},
		{
			name: "quarter out of range",
			path: "data/2022/5.json",
		},
		{
			name: "year without adjacent quarter",
			path: "data/2022/summary.json",
		},
		{
			name: "year as final segment",
			path: "data/2022",
		},
		{
			name: "empty path",
			path: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, quarter, ok := source.YearQuarter(tt.path)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.year, year)
			require.Equal(t, tt.quarter, quarter)
		})
	}
}
