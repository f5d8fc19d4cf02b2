// Package stats talks to the spreadsheet-backed statistics API: one
// best-effort read of per-role averages and one at-most-once write of the
// final session row. Both calls are bounded by fixed timeouts and neither
// outcome is ever surfaced to the respondent.
package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/greendilt/footprint/internal/engine"
	"github.com/greendilt/footprint/internal/factors"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrRoleNotFound indicates the stats sheet has no row for the role.
	ErrRoleNotFound = constError("no stats row for role")

	// ErrNotConfigured indicates a client without an endpoint URL.
	ErrNotConfigured = constError("stats endpoint not configured")
)

// DefaultTimeout bounds both the read and the write call.
const DefaultTimeout = 10 * time.Second

// Client is the stats API consumer.
type Client struct {
	http      *http.Client
	statsURL  string
	submitURL string
	log       zerolog.Logger
}

// New builds a client. Empty URLs disable the corresponding call. A zero
// timeout falls back to DefaultTimeout.
func New(statsURL, submitURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		statsURL:  statsURL,
		submitURL: submitURL,
		log:       log,
	}
}

// row mirrors one record of the stats tab. Numeric fields may arrive as
// numbers or as locale-formatted strings ("310,2"), so they decode through
// flexNumber.
type row struct {
	Role   string     `json:"Role"`
	AvgCO2 flexNumber `json:"AvgCO2"`
	Count  flexNumber `json:"Count"`
}

// flexNumber tolerates numbers, numeric strings with comma decimal
// separators or embedded spaces, and null. Unparseable values read as
// absent rather than failing the whole payload.
type flexNumber struct {
	Value float64
	OK    bool
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil //nolint:nilerr // malformed cell reads as absent
		}
		raw = strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
		raw = strings.ReplaceAll(raw, ",", ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil //nolint:nilerr // malformed cell reads as absent
		}
		f.Value, f.OK = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil //nolint:nilerr // malformed cell reads as absent
	}
	f.Value, f.OK = v, true
	return nil
}

// RoleAverage fetches the (average, sample count) pair for a role. Role
// matching is exact after trimming. Any transport or decode failure is an
// error for the caller to degrade on; it is never fatal.
func (c *Client) RoleAverage(ctx context.Context, role factors.Role) (float64, int, error) {
	if c.statsURL == "" {
		return 0, 0, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statsURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("building stats request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("fetching role stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("fetching role stats: HTTP %d", resp.StatusCode)
	}

	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, 0, fmt.Errorf("decoding role stats: %w", err)
	}

	want := strings.TrimSpace(string(role))
	for _, r := range rows {
		if strings.TrimSpace(r.Role) != want {
			continue
		}
		if !r.AvgCO2.OK {
			return 0, 0, ErrRoleNotFound
		}
		count := 0
		if r.Count.OK {
			count = int(r.Count.Value)
		}
		return r.AvgCO2.Value, count, nil
	}
	return 0, 0, ErrRoleNotFound
}

// submission is the flat row appended to the collection sheet.
type submission struct {
	Role       string  `json:"Role"`
	CO2Devices float64 `json:"CO2 Devices"`
	CO2EWaste  float64 `json:"CO2 E-Waste"`
	CO2AI      float64 `json:"CO2 AI"`
	CO2Digital float64 `json:"CO2 Digital Activities"`
	CO2Total   float64 `json:"CO2 Total"`
}

// Submit appends the final row. Numbers are rounded to 6 decimal places
// and magnitudes below 1e-12 are normalized to exactly 0. Non-2xx
// responses are errors.
func (c *Client) Submit(ctx context.Context, role factors.Role, res engine.Result) error {
	if c.submitURL == "" {
		return ErrNotConfigured
	}

	payload := submission{
		Role:       string(role),
		CO2Devices: normVal(res.Devices),
		CO2EWaste:  normVal(res.EWaste),
		CO2AI:      normVal(res.AITools),
		CO2Digital: normVal(res.DigitalActivities),
		CO2Total:   normVal(res.Total()),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submitURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submitting final row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("submitting final row: HTTP %d", resp.StatusCode)
	}

	c.log.Debug().Str("role", string(role)).Msg("final row accepted")
	return nil
}

// normVal rounds to 6 decimals and squashes float noise to exact zero.
func normVal(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return math.Round(v*1e6) / 1e6
}
