package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/spektr-org/pulse/engine"
)

const companiesJSON = `[
	{
		"id": 1,
		"uuid": "7f1c2a4e-1d3b-4c5e-9f6a-0b1c2d3e4f50",
		"company_name": "Stripe",
		"founded_year": 2010,
		"headquarters": "San Francisco",
		"industry": "Fintech",
		"total_funding_usd": 2200000000,
		"arr_usd": 14000000000,
		"valuation_usd": 95000000000,
		"employee_count": 8000,
		"top_investors": "Sequoia, a16z",
		"product": "Payments",
		"g2_rating": 4.6,
		"created_at": "2024-05-01T10:00:00Z",
		"updated_at": "2024-05-02T10:00:00Z"
	},
	{
		"id": 2,
		"uuid": "0a9b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d",
		"company_name": "Tiny",
		"founded_year": 1998,
		"headquarters": "Austin",
		"industry": "SaaS",
		"total_funding_usd": 0,
		"arr_usd": 0,
		"valuation_usd": 0,
		"employee_count": null,
		"top_investors": "",
		"product": "Widgets",
		"g2_rating": 3.9,
		"created_at": "2024-05-01T10:00:00Z",
		"updated_at": "2024-05-01T10:00:00Z"
	}
]`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/api/", Timeout: 5 * time.Second},
		WithLogger(log.New(io.Discard)))
}

// ============================================================================
// COMPANIES
// ============================================================================

func TestListCompanies(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, companiesJSON)
	})

	companies, err := c.ListCompanies(context.Background(), ListOptions{Limit: 50, Industry: "Fintech"})
	if err != nil {
		t.Fatalf("ListCompanies failed: %v", err)
	}
	if gotPath != "/api/companies/" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "industry=Fintech&limit=50" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(companies) != 2 {
		t.Fatalf("companies = %d", len(companies))
	}

	stripe := companies[0]
	if stripe.UUID != uuid.MustParse("7f1c2a4e-1d3b-4c5e-9f6a-0b1c2d3e4f50") {
		t.Errorf("UUID = %s", stripe.UUID)
	}
	if stripe.Employees() != 8000 || stripe.ValuationUSD != 95000000000 {
		t.Errorf("stripe = %+v", stripe)
	}
	if companies[1].EmployeeCount != nil || companies[1].Employees() != 0 {
		t.Errorf("null employee_count should stay nil")
	}
}

func TestListCompaniesOmitsZeroOptions(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, "[]")
	})

	if _, err := c.ListCompanies(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("ListCompanies failed: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/companies/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		http.Error(w, `{"detail":"Company not found"}`, http.StatusNotFound)
	})

	_, err := c.GetCompany(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want *APIError 404", err)
	}
}

func TestServerErrorIsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.ListCompanies(context.Background(), ListOptions{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != 500 || apiErr.Body != "boom" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("500 must not match ErrNotFound")
	}
}

// ============================================================================
// VISUALIZATIONS
// ============================================================================

func TestGenerate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/visualizations/generate" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req["prompt"] != "companies by industry" {
			t.Errorf("prompt = %q", req["prompt"])
		}
		io.WriteString(w, `{
			"success": true,
			"visualization_type": "pie",
			"title": "Companies by Industry",
			"data": [{"industry": "Fintech", "count": 12}],
			"chart_config": {"legend_position": "bottom"},
			"sql": "SELECT industry, COUNT(*) FROM companies GROUP BY industry"
		}`)
	})

	res, err := c.Generate(context.Background(), "  companies by industry ")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !res.Success || res.VisualizationType != "pie" || len(res.Rows) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if got := res.Rows[0].Keys(); got[0] != "industry" || got[1] != "count" {
		t.Errorf("keys = %v", got)
	}
}

func TestGenerateEmptyPromptSkipsRequest(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if _, err := c.Generate(context.Background(), "   "); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("err = %v, want ErrEmptyPrompt", err)
	}
	if _, err := c.Modify(context.Background(), "", engine.VisualizationResult{}); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("err = %v, want ErrEmptyPrompt", err)
	}
	if called {
		t.Error("no request should be sent for an empty prompt")
	}
}

func TestGenerateFailureResultIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success": false, "visualization_type": "error", "title": "Error Processing Request", "data": [], "error": "bad query"}`)
	})

	res, err := c.Generate(context.Background(), "nonsense")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Success || res.ErrorMessage != "bad query" {
		t.Errorf("result = %+v", res)
	}
}

func TestModifySendsExistingVisualization(t *testing.T) {
	var body struct {
		Prompt   string          `json:"prompt"`
		Existing json.RawMessage `json:"existing_visualization"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/visualizations/modify" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		io.WriteString(w, `{"success": true, "visualization_type": "bar", "title": "Styled", "data": [], "chart_config": {"chart_style": "pastel"}}`)
	})

	existing := engine.VisualizationResult{
		Success:           true,
		VisualizationType: "bar",
		Title:             "Top Investors",
		Rows:              []engine.Record{engine.NewRecord(engine.Field{Key: "investor", Value: "Accel"}, engine.Field{Key: "n", Value: 3})},
		SQL:               "SELECT 1",
	}

	res, err := c.Modify(context.Background(), "make it pastel", existing)
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	if res.ChartConfig == nil || res.ChartConfig.ChartStyle != "pastel" {
		t.Errorf("result = %+v", res)
	}
	if body.Prompt != "make it pastel" {
		t.Errorf("prompt = %q", body.Prompt)
	}

	var sent engine.VisualizationResult
	if err := json.Unmarshal(body.Existing, &sent); err != nil {
		t.Fatalf("existing_visualization not a result: %v", err)
	}
	if sent.Title != "Top Investors" || sent.SQL != "SELECT 1" || len(sent.Rows) != 1 {
		t.Errorf("sent = %+v", sent)
	}
}

func TestContextCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "[]")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ListCompanies(ctx, ListOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
