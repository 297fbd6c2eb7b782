package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"vin-gateway/vehicle/domain"
)

// DefaultNHTSAURL é a base da API vPIC.
const DefaultNHTSAURL = "https://vpic.nhtsa.dot.gov/api/vehicles"

// Rótulos consumidos da lista Results do vPIC.
const (
	varManufacturer = "Manufacturer Name"
	varModel        = "Model"
	varModelYear    = "Model Year"
)

// NHTSAClient implementa domain.DecodeClient sobre o endpoint DecodeVin do vPIC.
//
// Por padrão faz uma única tentativa. Com WithRetry, erros de rede e 5xx são
// repetidos com backoff exponencial; 4xx, payload inválido e lista vazia não.
type NHTSAClient struct {
	baseURL    string
	httpClient *http.Client

	retries   int
	retryBase time.Duration

	slots          domain.SlotPool
	acquireTimeout time.Duration

	logger *slog.Logger
}

type ClientOption func(*NHTSAClient)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *NHTSAClient) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *NHTSAClient) { c.httpClient = &http.Client{Timeout: d} }
}

// WithRetry configura até `retries` novas tentativas, começando em `base`.
func WithRetry(retries int, base time.Duration) ClientOption {
	return func(c *NHTSAClient) {
		c.retries = retries
		c.retryBase = base
	}
}

// WithSlots limita as chamadas upstream simultâneas. acquireTimeout <= 0 usa o
// timeout do http.Client; a espera nunca fica sem prazo.
func WithSlots(pool domain.SlotPool, acquireTimeout time.Duration) ClientOption {
	return func(c *NHTSAClient) {
		c.slots = pool
		c.acquireTimeout = acquireTimeout
	}
}

func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *NHTSAClient) { c.logger = l }
}

func NewNHTSAClient(baseURL string, opts ...ClientOption) *NHTSAClient {
	if baseURL == "" {
		baseURL = DefaultNHTSAURL
	}
	c := &NHTSAClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retryBase:  200 * time.Millisecond,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type decodeResponse struct {
	Count   int            `json:"Count"`
	Message string         `json:"Message"`
	Results []decodeResult `json:"Results"`
}

type decodeResult struct {
	Variable string  `json:"Variable"`
	Value    *string `json:"Value"`
}

// Decode implementa domain.DecodeClient.
func (c *NHTSAClient) Decode(ctx context.Context, vin domain.VIN) (domain.DecodedVehicle, error) {
	if c.slots != nil {
		wait := c.acquireTimeout
		if wait <= 0 {
			wait = c.httpClient.Timeout
		}
		release, ok := domain.AcquireWithin(ctx, c.slots, wait)
		if !ok {
			return domain.DecodedVehicle{}, &domain.FetchError{VIN: vin, Err: domain.ErrNoSlot}
		}
		defer release()
	}

	var out domain.DecodedVehicle
	attempt := 0
	op := func() error {
		attempt++
		v, err := c.fetch(ctx, vin)
		if err == nil {
			out = v
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		if attempt <= c.retries {
			c.logger.Warn("upstream decode failed, retrying", "vin", vin, "attempt", attempt, "error", err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryBase
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(c.retries, 0))), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		var fe *domain.FetchError
		if errors.Is(err, domain.ErrNotFoundUpstream) || errors.As(err, &fe) {
			return domain.DecodedVehicle{}, err
		}
		return domain.DecodedVehicle{}, &domain.FetchError{VIN: vin, Err: err}
	}
	return out, nil
}

func (c *NHTSAClient) fetch(ctx context.Context, vin domain.VIN) (domain.DecodedVehicle, error) {
	u := fmt.Sprintf("%s/DecodeVin/%s?format=json", c.baseURL, url.PathEscape(string(vin)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.DecodedVehicle{}, &domain.FetchError{VIN: vin, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DecodedVehicle{}, &domain.FetchError{VIN: vin, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.DecodedVehicle{}, &domain.FetchError{
			VIN:        vin,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var body decodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.DecodedVehicle{}, &domain.FetchError{
			VIN:        vin,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("malformed payload: %w", err),
		}
	}
	if len(body.Results) == 0 {
		return domain.DecodedVehicle{}, fmt.Errorf("%w: %s", domain.ErrNotFoundUpstream, vin)
	}
	return normalize(body.Results), nil
}

// normalize extrai os três campos pelo rótulo; a primeira ocorrência vence.
func normalize(results []decodeResult) domain.DecodedVehicle {
	return domain.DecodedVehicle{
		Manufacturer: lookup(results, varManufacturer),
		Model:        lookup(results, varModel),
		Year:         lookup(results, varModelYear),
	}
}

func lookup(results []decodeResult, variable string) string {
	for _, r := range results {
		if r.Variable != variable {
			continue
		}
		if r.Value == nil || *r.Value == "" {
			return domain.Unknown
		}
		return *r.Value
	}
	return domain.Unknown
}

// retryable: rede (sem status) e 5xx.
func retryable(err error) bool {
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.StatusCode == 0 || fe.StatusCode >= 500
}
