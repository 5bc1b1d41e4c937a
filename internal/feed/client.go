package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"SpotWatch/internal/zone"
)

// DefaultBaseURL is the transparency platform's web API endpoint.
const DefaultBaseURL = "https://web-api.tp.entsoe.eu/api"

// dayAheadDocumentType selects day-ahead price publications.
const dayAheadDocumentType = "A44"

// EntsoeFetcher implements Fetcher against the ENTSO-E transparency platform.
type EntsoeFetcher struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewEntsoeFetcher creates a new fetcher with optional proxy support.
func NewEntsoeFetcher(baseURL, token, proxyURL string) *EntsoeFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &EntsoeFetcher{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *EntsoeFetcher) Name() string { return "entsoe" }

// FetchDayAheadPrices requests the raw publication document for one zone.
// Times must be UTC; start must precede end.
func (f *EntsoeFetcher) FetchDayAheadPrices(ctx context.Context, z zone.Zone, start, end time.Time) ([]byte, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("period start %s must be before period end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	endpoint, err := f.buildURL(z, start, end)
	if err != nil {
		return nil, fmt.Errorf("build request URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch day-ahead prices: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	// The API answers some failures (e.g. no data) with a 200 acknowledgement
	// document, so only transport-level failures are decided here.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch day-ahead prices: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (f *EntsoeFetcher) buildURL(z zone.Zone, start, end time.Time) (string, error) {
	u, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("documentType", dayAheadDocumentType)
	q.Set("in_Domain", z.EIC)
	q.Set("out_Domain", z.EIC)
	q.Set("periodStart", formatTimestamp(start))
	q.Set("periodEnd", formatTimestamp(end))
	q.Set("securityToken", f.Token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// formatTimestamp renders the API's yyyymmddHHMM timestamp form.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("200601021504")
}
