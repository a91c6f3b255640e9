package upstox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
	httpClient "github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/platform/http"
)

// strategyChainType is the only chain layout the endpoint serves here.
const strategyChainType = "PC_CHAIN"

// Client fetches strategy-chain snapshots from the Upstox open analytics
// endpoint.
type Client struct {
	baseURL       string
	debugDumpFile string
	httpClient    *httpClient.Client
	logger        zerolog.Logger
}

// ClientOptions holds options for creating a new Upstox client
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     int
	DebugDumpFile  string // when set, the raw response body is written here verbatim
}

// NewClient creates a new Upstox strategy-chain client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:        options.RequestTimeout,
		RequestsPerSec: options.RequestsPerSec,
		MaxRetries:     options.MaxRetries,
	}

	// Apply defaults if not set
	if httpOpts.Timeout == 0 {
		httpOpts.Timeout = 10 * time.Second
	}
	if httpOpts.RequestsPerSec == 0 {
		httpOpts.RequestsPerSec = 5
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://service.upstox.com/option-analytics-tool/open/v1/strategy-chains"
	}

	return &Client{
		baseURL:       baseURL,
		debugDumpFile: options.DebugDumpFile,
		httpClient:    httpClient.NewClient(httpOpts),
		logger:        log.With().Str("component", "upstox_client").Logger(),
	}
}

// FetchError reports a failed chain fetch: network error, timeout,
// non-2xx status, malformed JSON, or a body without the data section.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (%s): %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// GetStrategyChain fetches the option chain snapshot for one asset and
// expiry (DD-MM-YYYY). Blocks until the round trip completes or the
// client timeout fires; no retries unless configured.
func (c *Client) GetStrategyChain(ctx context.Context, assetKey, expiry string) (*model.RawChainResponse, error) {
	params := url.Values{}
	params.Set("assetKey", assetKey)
	params.Set("strategyChainType", strategyChainType)
	params.Set("expiry", expiry)
	reqURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug().Str("url", reqURL).Msg("Fetching option chain")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Op: "request", Err: err}
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Chain request failed")
		return nil, &FetchError{Op: "http", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: "read", Err: err}
	}

	if c.debugDumpFile != "" {
		if err := os.WriteFile(c.debugDumpFile, body, 0o644); err != nil {
			// Dump is a diagnostic aid, not part of the fetch contract.
			c.logger.Warn().Err(err).Str("file", c.debugDumpFile).Msg("Failed to write debug dump")
		} else {
			c.logger.Debug().Str("file", c.debugDumpFile).Msg("Wrote raw response dump")
		}
	}

	var chainResp model.RawChainResponse
	if err := json.Unmarshal(body, &chainResp); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing chain JSON")
		return nil, &FetchError{Op: "decode", Err: err}
	}

	if chainResp.Data == nil {
		c.logger.Warn().Msg("Response has no data section")
		return nil, &FetchError{Op: "decode", Err: fmt.Errorf("missing data key in response")}
	}

	c.logger.Debug().
		Int("strikes", len(chainResp.Data.StrikePrices)).
		Int("calls", len(chainResp.Data.CallOptions)).
		Int("puts", len(chainResp.Data.PutOptions)).
		Msg("Fetched option chain")
	return &chainResp, nil
}
