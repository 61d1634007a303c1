// Package vehicle resolves free text to a vehicle description when the text
// is a VIN. Resolution is a strict chain: override table, format check,
// external decode. Nothing in the chain is allowed to fail the conversation;
// every failure means "no vehicle identified".
package vehicle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	logx "github.com/motobot-ai/server/pkg/logger"
)

// DefaultDecodeBaseURL is the public NHTSA vPIC decoder.
const DefaultDecodeBaseURL = "https://vpic.nhtsa.dot.gov"

// DefaultTimeout bounds the external decode call.
const DefaultTimeout = 5 * time.Second

// vinPattern is the 17-character VIN alphabet (no I, O, Q).
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// defaultOverrides maps specific VINs to fixed descriptions. These hits must
// never depend on network availability.
var defaultOverrides = map[string]string{
	"WBA1R51050V764951": "BMW Seria 1 (E87) 2004-2011",
	"VWZZZ1JZEW000001":  "Volkswagen Golf IV 1.9 TDI",
}

// Resolver decodes VINs into vehicle descriptions.
type Resolver struct {
	baseURL   string
	overrides map[string]string
	client    *http.Client
}

// Config configures the resolver. Zero values fall back to the public
// decoder, the built-in override table and the default timeout.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Overrides map[string]string
}

func NewResolver(cfg Config) *Resolver {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultDecodeBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	overrides := cfg.Overrides
	if overrides == nil {
		overrides = defaultOverrides
	}
	return &Resolver{
		baseURL:   baseURL,
		overrides: overrides,
		client:    &http.Client{Timeout: timeout},
	}
}

// Resolve returns the vehicle description for the given text, or "" when the
// text is not a VIN or the VIN cannot be decoded. The override table is
// consulted before the format check and before any network call.
func (r *Resolver) Resolve(ctx context.Context, raw string) string {
	vin := strings.ToUpper(strings.TrimSpace(raw))

	if desc, ok := r.overrides[vin]; ok {
		return desc
	}

	if !vinPattern.MatchString(vin) {
		return ""
	}

	desc, err := r.decode(ctx, vin)
	if err != nil {
		// Soft failure: the message falls through to normal query handling.
		logx.Warn().Err(err).Str("vin", vin).Msg("VIN decode failed")
		return ""
	}
	return desc
}

// decodeResponse is the vPIC payload shape; only three variables matter.
type decodeResponse struct {
	Results []struct {
		Variable string `json:"Variable"`
		Value    string `json:"Value"`
	} `json:"Results"`
}

func (r *Resolver) decode(ctx context.Context, vin string) (string, error) {
	url := fmt.Sprintf("%s/api/vehicles/decodevin/%s?format=json", r.baseURL, vin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vin decode returned status %d", resp.StatusCode)
	}

	var out decodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode vin response: %w", err)
	}

	var make_, model, year string
	for _, res := range out.Results {
		switch res.Variable {
		case "Make":
			make_ = res.Value
		case "Model":
			model = res.Value
		case "Model Year":
			year = res.Value
		}
	}
	// The decoder often returns empty fields for European vehicles.
	if make_ == "" || model == "" {
		return "", nil
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", make_, model, year)), nil
}
