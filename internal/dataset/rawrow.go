package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"taxatlas/internal/taxerr"
)

// RawRow is one row of the source CSV before enrichment
type RawRow struct {
	Country   string
	Continent string
	Rate      float64
	Gdp       float64 // billions USD; <= 0 means unknown
	Oecd      bool
	Eu27      bool
	Gseven    bool
	Gtwenty   bool
	Brics     bool
}

// csv column names we recognize; extra columns are ignored
const (
	colCountry   = "country"
	colContinent = "continent"
	colRate      = "rate"
	colGdp       = "gdp"
	colOecd      = "oecd"
	colEu27      = "eu27"
	colGseven    = "gseven"
	colGtwenty   = "gtwenty"
	colBrics     = "brics"
)

// ReadCSV parses the raw source CSV. Rows missing a country, continent code,
// or parsable rate are dropped, not fatal; the returned count reports how
// many were dropped. A header row naming at least country, continent, and
// rate is required.
func ReadCSV(r io.Reader) (rows []RawRow, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, taxerr.Parse("reading CSV header", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colCountry, colContinent, colRate} {
		if _, ok := idx[required]; !ok {
			return nil, 0, taxerr.Parse("CSV header missing column "+strconv.Quote(required), nil)
		}
	}

	for {
		record, rerr := cr.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			// Malformed line: skip, keep reading
			dropped++
			continue
		}

		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := RawRow{
			Country:   field(colCountry),
			Continent: strings.ToUpper(field(colContinent)),
		}
		rate, perr := strconv.ParseFloat(field(colRate), 64)
		if row.Country == "" || row.Continent == "" || perr != nil {
			dropped++
			continue
		}
		row.Rate = rate

		if gdp, gerr := strconv.ParseFloat(field(colGdp), 64); gerr == nil {
			row.Gdp = gdp
		}
		row.Oecd = flagSet(field(colOecd))
		row.Eu27 = flagSet(field(colEu27))
		row.Gseven = flagSet(field(colGseven))
		row.Gtwenty = flagSet(field(colGtwenty))
		row.Brics = flagSet(field(colBrics))

		rows = append(rows, row)
	}

	return rows, dropped, nil
}

func flagSet(s string) bool {
	return s == "1"
}
