package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/oceanprotocol/ocean-sdk-go/pkg/model"
	"github.com/raulk/clock"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Endpoint names advertised in a provider's discovery document.
const (
	EndpointNonce      = "nonce"
	EndpointEncrypt    = "encrypt"
	EndpointFileInfo   = "fileinfo"
	EndpointInitialize = "initialize"
	EndpointDownload   = "download"
)

const (
	contentTypeJSON        = "application/json"
	contentTypeOctetStream = "application/octet-stream"
)

var (
	// ErrRequestFailed is returned by GetNonce, Encrypt and GetDownloadURL
	// when the provider cannot be reached or answers with an error.
	ErrRequestFailed = errors.New("HTTP request failed")
	// ErrAssetNotAvailable is returned by Initialize when the provider cannot
	// be reached or rejects the request.
	ErrAssetNotAvailable = errors.New("asset URL not found or not available")
)

// ResponseError describes a non-2xx provider response.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("provider responded %d: %s", e.StatusCode, e.Body)
}

// Client talks to provider REST APIs. It keeps no per-provider state: every
// operation takes the provider URI and re-reads the discovery document.
type Client struct {
	http  *http.Client
	clock clock.Clock
}

// New returns a provider client. A nil httpClient means http.DefaultClient;
// a nil clk means wall clock.
func New(httpClient *http.Client, clk clock.Clock) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Client{http: httpClient, clock: clk}
}

// GetEndpoints fetches the discovery document served at providerURI.
// It returns nil, after logging, when the request or decoding fails.
func (c *Client) GetEndpoints(ctx context.Context, providerURI string) *model.ProviderInfo {
	info, err := c.discover(ctx, providerURI)
	if err != nil {
		zap.L().Error("Failed to get provider endpoints", zap.String("provider", providerURI), zap.Error(err))
		return nil
	}
	return info
}

// discover reads the discovery document. The status code is not checked:
// a body that decodes as a discovery document is accepted as is.
func (c *Client) discover(ctx context.Context, providerURI string) (*model.ProviderInfo, error) {
	_, body, err := c.send(ctx, http.MethodGet, providerURI, contentTypeJSON, nil)
	if err != nil {
		return nil, err
	}
	var info model.ProviderInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode discovery document: %w", err)
	}
	return &info, nil
}

// GetServiceEndpoints resolves the discovery document entries against
// providerURI, keeping the document's order. The advertised path is appended
// to providerURI as is.
func GetServiceEndpoints(providerURI string, info *model.ProviderInfo) []model.ServiceEndpoint {
	if info == nil {
		return nil
	}
	return lo.Map(info.ServiceEndpoints, func(e model.EndpointEntry, _ int) model.ServiceEndpoint {
		return model.ServiceEndpoint{
			ServiceName: e.Name,
			Method:      e.Method,
			URLPath:     providerURI + e.Path,
		}
	})
}

// GetEndpointURL returns the first endpoint named serviceName, or nil.
func GetEndpointURL(endpoints []model.ServiceEndpoint, serviceName string) *model.ServiceEndpoint {
	e, ok := lo.Find(endpoints, func(e model.ServiceEndpoint) bool {
		return e.ServiceName == serviceName
	})
	if !ok {
		return nil
	}
	return &e
}

// ServiceEndpoints fetches the discovery document and resolves its entries.
func (c *Client) ServiceEndpoints(ctx context.Context, providerURI string) []model.ServiceEndpoint {
	return GetServiceEndpoints(providerURI, c.GetEndpoints(ctx, providerURI))
}

// endpoint looks up a single endpoint of the provider. It returns nil and a
// nil error when the provider does not advertise name, and the discovery
// error when the document cannot be fetched or decoded.
func (c *Client) endpoint(ctx context.Context, providerURI, name string) (*model.ServiceEndpoint, error) {
	info, err := c.discover(ctx, providerURI)
	if err != nil {
		zap.L().Error("Failed to get provider endpoints", zap.String("provider", providerURI), zap.Error(err))
		return nil, err
	}
	e := GetEndpointURL(GetServiceEndpoints(providerURI, info), name)
	if e == nil {
		zap.L().Debug("Provider endpoint not advertised", zap.String("provider", providerURI), zap.String("endpoint", name))
	}
	return e, nil
}

// IsValidProvider reports whether url answers with a discovery document
// that names a provider address. Any failure yields false.
func (c *Client) IsValidProvider(ctx context.Context, url string) bool {
	status, body, err := c.send(ctx, http.MethodGet, url, contentTypeJSON, nil)
	if err != nil {
		zap.L().Error("Failed to reach provider", zap.String("url", url), zap.Error(err))
		return false
	}
	if !ok(status) {
		return false
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		zap.L().Error("Failed to decode provider response", zap.String("url", url), zap.Error(err))
		return false
	}
	return truthy(doc["providerAddress"])
}

// send performs one request and reads the whole response body.
func (c *Client) send(ctx context.Context, method, url, contentType string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

// truthy reports whether a JSON value is neither absent, null, false, zero
// nor the empty string.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}
