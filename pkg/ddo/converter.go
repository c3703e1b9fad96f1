package ddo

import (
	"context"
	"errors"
	"fmt"

	"github.com/oceanprotocol/ocean-sdk-go/pkg/model"
	"github.com/raulk/clock"
	"go.uber.org/zap"
)

// ErrMissingService is returned when a legacy DDO lacks the metadata service
// (index 0) or the access service (index 1).
var ErrMissingService = errors.New("legacy DDO must have a metadata and an access service")

// timestampLayout renders whole seconds; the converter appends a literal "Z".
const timestampLayout = "2006-01-02T15:04:05"

// Resolver fetches the legacy DDO of an asset.
type Resolver interface {
	Resolve(ctx context.Context, did string) (*model.LegacyDDO, error)
}

// Converter turns legacy (v3) DDOs into current (v4) DDOs.
type Converter struct {
	resolver Resolver
	clock    clock.Clock
}

// NewConverter returns a Converter that fetches legacy documents through
// resolver. clk stamps the created and updated dates; nil means wall clock.
func NewConverter(resolver Resolver, clk clock.Clock) *Converter {
	if clk == nil {
		clk = clock.New()
	}
	return &Converter{resolver: resolver, clock: clk}
}

// Convert fetches the legacy DDO for did and returns its v4 form.
func (c *Converter) Convert(ctx context.Context, did string) (*model.DDO, error) {
	legacy, err := c.resolver.Resolve(ctx, did)
	if err != nil {
		zap.L().Error("Failed to resolve legacy DDO", zap.String("did", did), zap.Error(err))
		return nil, fmt.Errorf("resolve %s: %w", did, err)
	}
	return c.ConvertDocument(did, legacy)
}

// ConvertDocument maps an already fetched legacy DDO. Fields are copied
// positionally: metadata from service 0, endpoint and timeout from service 1.
// The asset type is not checked and the output's files are left empty.
func (c *Converter) ConvertDocument(did string, legacy *model.LegacyDDO) (*model.DDO, error) {
	if legacy == nil || len(legacy.Services) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrMissingService, did)
	}

	published := c.clock.Now().UTC().Format(timestampLayout) + "Z"
	meta := legacy.Services[0].Attributes
	access := legacy.Services[1]

	doc := &model.DDO{
		Context:    []string{model.DDOContext},
		ID:         did,
		Version:    model.DDOVersion,
		ChainID:    legacy.ChainID,
		NFTAddress: "",
		Metadata: model.Metadata{
			Created:     published,
			Updated:     published,
			Type:        meta.Main.Type,
			Name:        meta.Main.Name,
			Description: meta.AdditionalInformation.Description,
			Tags:        meta.AdditionalInformation.Tags,
			Links:       meta.AdditionalInformation.Links,
			Author:      meta.Main.Author,
			License:     meta.Main.License,
			AdditionalInformation: model.AdditionalInformation{
				TermsAndConditions: meta.AdditionalInformation.TermsAndConditions,
			},
		},
		Services: []model.Service{{
			ID:               did,
			Type:             meta.Main.Type,
			Files:            "",
			DatatokenAddress: legacy.DataTokenInfo.Address,
			ServiceEndpoint:  access.ServiceEndpoint,
			Timeout:          access.Attributes.Main.Timeout,
		}},
	}

	zap.L().Debug("Converted legacy DDO", zap.String("did", did), zap.String("type", doc.Metadata.Type))
	return doc, nil
}
