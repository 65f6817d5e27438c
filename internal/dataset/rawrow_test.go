package dataset

import (
	"strings"
	"testing"
)

const sampleCSV = `country,continent,rate,gdp,oecd,eu27,gseven,gtwenty,brics
Austria,EU,24,480,1,1,0,0,0
Cayman Islands,CB,0,6,0,0,0,0,0
Nameless,,20,,0,0,0,0,0
,EU,20,,0,0,0,0,0
BadRate,EU,abc,,0,0,0,0,0
India,AS,25.17,3400,0,0,0,1,1
`

func TestReadCSV(t *testing.T) {
	rows, dropped, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if dropped != 3 {
		t.Errorf("dropped = %d, want 3", dropped)
	}

	austria := rows[0]
	if austria.Country != "Austria" || austria.Continent != "EU" || austria.Rate != 24 {
		t.Errorf("austria parsed wrong: %+v", austria)
	}
	if !austria.Oecd || !austria.Eu27 || austria.Gseven {
		t.Errorf("austria flags parsed wrong: %+v", austria)
	}

	india := rows[2]
	if india.Rate != 25.17 || india.Gdp != 3400 {
		t.Errorf("india numerics parsed wrong: %+v", india)
	}
	if !india.Gtwenty || !india.Brics {
		t.Errorf("india flags parsed wrong: %+v", india)
	}
}

func TestReadCSVHeaderVariants(t *testing.T) {
	// Uppercase headers and extra columns are tolerated
	csv := "Country,CONTINENT,Rate,comment\nMalta,EU,35,note\n"
	rows, dropped, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(rows) != 1 || dropped != 0 {
		t.Fatalf("rows=%d dropped=%d, want 1/0", len(rows), dropped)
	}
	if rows[0].Country != "Malta" {
		t.Errorf("Country = %q", rows[0].Country)
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("country,rate\nMalta,35\n"))
	if err == nil {
		t.Fatal("want error for missing continent column")
	}
	if !strings.Contains(err.Error(), "PARSE_FAILED") {
		t.Errorf("want PARSE_FAILED, got %v", err)
	}
}

func TestReadCSVLowercasesContinentInput(t *testing.T) {
	rows, _, err := ReadCSV(strings.NewReader("country,continent,rate\nMalta,eu,35\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if rows[0].Continent != "EU" {
		t.Errorf("continent should uppercase, got %q", rows[0].Continent)
	}
}
