package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ErrProviderUnavailable covers transport failures, timeouts, non-2xx answers and
// payloads that cannot be read. Such failures are never cached.
var ErrProviderUnavailable = errors.New("geocoding provider unavailable")

// DefaultProviderTimeout bounds a provider call when no positive timeout is configured.
var DefaultProviderTimeout = 5 * time.Second

type Provider interface {
	// Geocode returns nil coordinates and a nil error when the provider answered
	// but knows no such address.
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type YandexProvider struct {
	client  HTTPClient
	baseURL string
	apiKey  string
	timeout time.Duration
}

func NewYandexProvider(client HTTPClient, baseURL, apiKey string, timeout time.Duration) *YandexProvider {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &YandexProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
	}
}

type yandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

func (p *YandexProvider) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build geocode request")
	}
	q := req.URL.Query()
	q.Set("geocode", address)
	q.Set("apikey", p.apiKey)
	q.Set("format", "json")
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrProviderUnavailable, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrProviderUnavailable, "unexpected status: %d", resp.StatusCode)
	}

	var decoded yandexResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrapf(ErrProviderUnavailable, "decode response: %v", err)
	}

	found := decoded.Response.GeoObjectCollection.FeatureMember
	if len(found) == 0 {
		return nil, nil
	}

	coords, err := ParsePosition(found[0].GeoObject.Point.Pos)
	if err != nil {
		return nil, errors.Wrapf(ErrProviderUnavailable, "%v", err)
	}
	return &coords, nil
}

var _ Provider = (*YandexProvider)(nil)
