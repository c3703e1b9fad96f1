package ddo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/oceanprotocol/ocean-sdk-go/pkg/model"
	"go.uber.org/zap"
)

// ErrDDONotFound is returned when the metadata cache has no document for a DID.
var ErrDDONotFound = errors.New("DDO not found")

// AquariusResolver resolves legacy DDOs from an Aquarius metadata cache.
type AquariusResolver struct {
	baseURL string
	client  *http.Client
}

// NewAquariusResolver returns a resolver for the metadata cache at baseURL.
// A nil client means http.DefaultClient.
func NewAquariusResolver(baseURL string, client *http.Client) *AquariusResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &AquariusResolver{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// DDOURL returns the metadata cache URL of did.
func (r *AquariusResolver) DDOURL(did string) string {
	return r.baseURL + "/api/v1/aquarius/assets/ddo/" + did
}

// Resolve fetches and decodes the legacy DDO of did.
func (r *AquariusResolver) Resolve(ctx context.Context, did string) (*model.LegacyDDO, error) {
	url := r.DDOURL(did)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("Metadata cache returned non-200", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %s (status %d)", ErrDDONotFound, did, resp.StatusCode)
	}

	var doc model.LegacyDDO
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode DDO %s: %w", did, err)
	}
	return &doc, nil
}
