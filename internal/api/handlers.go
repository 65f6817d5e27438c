package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"taxatlas/internal/query"
	"taxatlas/internal/schema"
	"taxatlas/internal/store"
	"taxatlas/internal/taxerr"
)

// HealthResponse is the /health payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// ListResponse is the filtered jurisdiction list payload
type ListResponse struct {
	Count   int                         `json:"count"`
	Records []schema.JurisdictionRecord `json:"records"`
}

func (s *Server) handleJurisdictions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleList(w, r)
	case http.MethodPost:
		s.handleUpsert(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, taxerr.Validation("method", "method not allowed"))
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.Load()
	if err != nil {
		writeTaxErr(w, err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeTaxErr(w, err)
		return
	}

	filtered := query.Filter(records, criteria)
	writeJSON(w, http.StatusOK, ListResponse{Count: len(filtered), Records: filtered})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, taxerr.Validation("method", "method not allowed"))
		return
	}

	country := strings.TrimPrefix(r.URL.Path, "/api/jurisdictions/")
	country = strings.TrimSpace(country)
	if country == "" {
		writeError(w, http.StatusBadRequest, taxerr.Validation("country", "country name is required"))
		return
	}

	records, err := s.store.Load()
	if err != nil {
		writeTaxErr(w, err)
		return
	}

	i := schema.FindCountry(records, country)
	if i < 0 {
		writeError(w, http.StatusNotFound, taxerr.Validation("country", "no such jurisdiction"))
		return
	}
	writeJSON(w, http.StatusOK, records[i])
}

// SummaryResponse is the regional rollup payload
type SummaryResponse struct {
	Regions []query.RegionStats `json:"regions"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, taxerr.Validation("method", "method not allowed"))
		return
	}

	records, err := s.store.Load()
	if err != nil {
		writeTaxErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Regions: query.SummarizeByRegion(records)})
}

// TopResponse is the ranked chart payload
type TopResponse struct {
	By      query.SortKey               `json:"by"`
	Records []schema.JurisdictionRecord `json:"records"`
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, taxerr.Validation("method", "method not allowed"))
		return
	}

	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeTaxErr(w, taxerr.Validation("n", "must be an integer"))
			return
		}
		n = parsed
	}
	key := query.ParseSortKey(r.URL.Query().Get("by"))

	records, err := s.store.Load()
	if err != nil {
		writeTaxErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TopResponse{By: key, Records: query.TopN(records, n, key)})
}

// UpsertResponse reports the outcome of a write
type UpsertResponse struct {
	Country string `json:"country"`
	Total   int    `json:"total"`
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeTaxErr(w, taxerr.Parse("parsing form submission", err))
		return
	}

	if err := s.verifier.Verify(r.PostFormValue("token")); err != nil {
		if s.metrics != nil {
			s.metrics.AuthFailures.Inc()
		}
		writeTaxErr(w, err)
		return
	}

	rec, originalCountry, err := recordFromForm(r)
	if err != nil {
		writeTaxErr(w, err)
		return
	}

	records, err := s.store.Load()
	if err != nil {
		writeTaxErr(w, err)
		return
	}

	records = store.Upsert(records, rec, originalCountry)
	if err := s.store.Save(records); err != nil {
		writeTaxErr(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.SavesTotal.Inc()
	}
	writeJSON(w, http.StatusOK, UpsertResponse{Country: rec.Country, Total: len(records)})
}

// criteriaFromQuery parses the dashboard's query parameters into filter
// criteria. Unset parameters stay nil and act as no-ops.
func criteriaFromQuery(r *http.Request) (query.Criteria, error) {
	q := r.URL.Query()
	c := query.Criteria{
		Region:  q.Get("region"),
		Keyword: q.Get("query"),
	}

	if raw := q.Get("max_tax"); raw != "" {
		v, err := schema.ParseFloatField("max_tax", raw)
		if err != nil {
			return c, err
		}
		c.MaxTaxRate = &v
	}
	if raw := q.Get("max_cost"); raw != "" {
		v, err := schema.ParseIntField("max_cost", raw)
		if err != nil {
			return c, err
		}
		c.MaxCostIndex = &v
	}
	if raw := q.Get("max_social"); raw != "" {
		v, err := schema.ParseFloatField("max_social", raw)
		if err != nil {
			return c, err
		}
		c.MaxSocialRate = &v
	}
	if raw := q.Get("max_incorporation"); raw != "" {
		v, err := schema.ParseIntField("max_incorporation", raw)
		if err != nil {
			return c, err
		}
		c.MaxIncorporationFee = &v
	}
	if raw := q.Get("min_foundation"); raw != "" {
		v, err := schema.ParseIntField("min_foundation", raw)
		if err != nil {
			return c, err
		}
		c.MinFoundationScore = &v
	}
	return c, nil
}

// recordFromForm validates and coerces a form submission into a record.
// The original_country field carries the pre-rename identity for upserts.
func recordFromForm(r *http.Request) (schema.JurisdictionRecord, string, error) {
	var rec schema.JurisdictionRecord

	rec.Country = strings.TrimSpace(r.PostFormValue("country"))
	rec.Region = strings.TrimSpace(r.PostFormValue("region"))
	if rec.Country == "" {
		return rec, "", taxerr.Validation("country", "country is required")
	}
	if rec.Region == "" {
		return rec, "", taxerr.Validation("region", "region is required")
	}

	var err error
	if rec.CorporateTaxRate, err = schema.ParseFloatField("corporate_tax_rate", r.PostFormValue("corporate_tax_rate")); err != nil {
		return rec, "", err
	}
	if rec.OperatingCostIndex, err = schema.ParseIntField("operating_cost_index", r.PostFormValue("operating_cost_index")); err != nil {
		return rec, "", err
	}
	if rec.EmployerSocialSecurityRate, err = schema.ParseFloatField("employer_social_security_rate", r.PostFormValue("employer_social_security_rate")); err != nil {
		return rec, "", err
	}
	if rec.IncorporationFeesUsd, err = schema.ParseIntField("incorporation_fees_usd", r.PostFormValue("incorporation_fees_usd")); err != nil {
		return rec, "", err
	}
	if rec.AnnualFilingCostUsd, err = schema.ParseIntField("annual_filing_cost_usd", r.PostFormValue("annual_filing_cost_usd")); err != nil {
		return rec, "", err
	}

	rec.TreatyNetworkStrength = r.PostFormValue("treaty_network_strength")
	rec.ComplianceBurden = schema.ComplianceBurden(strings.TrimSpace(r.PostFormValue("compliance_burden")))
	rec.ReputationRisk = schema.ReputationRisk(strings.TrimSpace(r.PostFormValue("reputation_risk")))
	rec.Incentives = schema.SplitLines(r.PostFormValue("incentives"))
	rec.Notes = schema.SplitLines(r.PostFormValue("notes"))

	rec.FoundationTerms.Availability = strings.TrimSpace(r.PostFormValue("foundation_availability"))
	rec.FoundationTerms.ControlRequirements = strings.TrimSpace(r.PostFormValue("foundation_control"))
	rec.FoundationTerms.Reporting = strings.TrimSpace(r.PostFormValue("foundation_reporting"))
	rec.FoundationTerms.SubstanceRequirements = strings.TrimSpace(r.PostFormValue("foundation_substance"))
	rec.FoundationTerms.Notes = schema.SplitLines(r.PostFormValue("foundation_notes"))
	if rec.FoundationTerms.FriendlyScore, err = schema.ParseIntField("foundation_friendly_score", r.PostFormValue("foundation_friendly_score")); err != nil {
		return rec, "", err
	}

	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return rec, "", err
	}

	return rec, strings.TrimSpace(r.PostFormValue("original_country")), nil
}
