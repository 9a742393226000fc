package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// CLIENT TYPES — Backend schema for the companies + visualization API
// ============================================================================
// The backend owns the data and the LLM call. This package only moves JSON.
// It NEVER interprets a visualization result; that is engine.Render's job.
// ============================================================================

// Config holds the backend connection settings.
type Config struct {
	BaseURL string        // e.g. "http://localhost:8200/api"
	Timeout time.Duration // per-request timeout (0 = DefaultTimeout)
}

// DefaultBaseURL is the backend address used when Config.BaseURL is empty.
const DefaultBaseURL = "http://localhost:8200/api"

// DefaultTimeout bounds every request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Company is one row of the companies table.
type Company struct {
	ID              int       `json:"id"`
	UUID            uuid.UUID `json:"uuid"`
	CompanyName     string    `json:"company_name"`
	FoundedYear     int       `json:"founded_year"`
	Headquarters    string    `json:"headquarters"`
	Industry        string    `json:"industry"`
	TotalFundingUSD int64     `json:"total_funding_usd"`
	ARRUSD          int64     `json:"arr_usd"`
	ValuationUSD    int64     `json:"valuation_usd"`
	EmployeeCount   *int      `json:"employee_count"`
	TopInvestors    string    `json:"top_investors"`
	Product         string    `json:"product"`
	G2Rating        float64   `json:"g2_rating"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Employees returns the employee count, 0 when unknown.
func (c Company) Employees() int {
	if c.EmployeeCount == nil {
		return 0
	}
	return *c.EmployeeCount
}

// ListOptions narrows a company listing. Zero values are omitted.
type ListOptions struct {
	Skip     int
	Limit    int
	Industry string
}

// ============================================================================
// ERRORS
// ============================================================================

var (
	// ErrNotFound is returned when the backend answers 404.
	ErrNotFound = errors.New("pulse: not found")
	// ErrEmptyPrompt is returned before any request when a prompt is blank.
	ErrEmptyPrompt = errors.New("pulse: prompt is required")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pulse: API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("pulse: API returned %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
