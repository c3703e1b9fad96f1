package ddo

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/model"
	"github.com/raulk/clock"
)

const testDID = "did:op:7Bce67697eD2858d0683c631DdE7Af823b7eea38"

type staticResolver struct {
	doc *model.LegacyDDO
	err error
	did string
}

func (r *staticResolver) Resolve(_ context.Context, did string) (*model.LegacyDDO, error) {
	r.did = did
	return r.doc, r.err
}

func loadLegacy(t *testing.T) *model.LegacyDDO {
	t.Helper()
	raw, err := os.ReadFile("testdata/legacy_ddo.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var doc model.LegacyDDO
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &doc
}

func mockClock() *clock.Mock {
	clk := clock.NewMock()
	clk.Set(time.Date(2022, 3, 14, 9, 26, 53, 589_000_000, time.FixedZone("CET", 3600)))
	return clk
}

func TestConverter_Convert(t *testing.T) {
	resolver := &staticResolver{doc: loadLegacy(t)}
	conv := NewConverter(resolver, mockClock())

	got, err := conv.Convert(context.Background(), testDID)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if resolver.did != testDID {
		t.Fatalf("resolver called with %q", resolver.did)
	}

	want := &model.DDO{
		Context:    []string{"https://w3id.org/did/v1"},
		ID:         testDID,
		Version:    "4.0.0",
		ChainID:    137,
		NFTAddress: "",
		Metadata: model.Metadata{
			Created:     "2022-03-14T08:26:53Z",
			Updated:     "2022-03-14T08:26:53Z",
			Type:        "dataset",
			Name:        "Daily weather observations",
			Description: "Temperature and rainfall per station.",
			Tags:        []string{"weather", "climate"},
			Links:       []string{"https://example.com/sample.csv"},
			Author:      "Met Office",
			License:     "CC0: Public Domain",
			AdditionalInformation: model.AdditionalInformation{
				TermsAndConditions: true,
			},
		},
		Services: []model.Service{{
			ID:               testDID,
			Type:             "dataset",
			Files:            "",
			DatatokenAddress: "0x7Bce67697eD2858d0683c631DdE7Af823b7eea38",
			ServiceEndpoint:  "https://provider.polygon.oceanprotocol.com",
			Timeout:          86400,
		}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("converted DDO mismatch (-want +got):\n%s", diff)
	}
}

func TestConverter_UsesRequestedDID(t *testing.T) {
	legacy := loadLegacy(t)
	legacy.ID = "did:op:somethingelse"
	conv := NewConverter(&staticResolver{doc: legacy}, mockClock())

	got, err := conv.Convert(context.Background(), testDID)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got.ID != testDID || got.Services[0].ID != testDID {
		t.Fatalf("expected requested DID, got id=%q service=%q", got.ID, got.Services[0].ID)
	}
}

func TestConverter_AlgorithmTypeCopied(t *testing.T) {
	legacy := loadLegacy(t)
	legacy.Services[0].Attributes.Main.Type = "algorithm"
	conv := NewConverter(&staticResolver{doc: legacy}, mockClock())

	got, err := conv.Convert(context.Background(), testDID)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got.Metadata.Type != "algorithm" || got.Services[0].Type != "algorithm" {
		t.Fatalf("unexpected types: %q %q", got.Metadata.Type, got.Services[0].Type)
	}
}

func TestConverter_ResolverError(t *testing.T) {
	boom := errors.New("boom")
	conv := NewConverter(&staticResolver{err: boom}, mockClock())

	_, err := conv.Convert(context.Background(), testDID)
	if !errors.Is(err, boom) {
		t.Fatalf("expected resolver error, got %v", err)
	}
}

func TestConverter_MissingAccessService(t *testing.T) {
	legacy := loadLegacy(t)
	legacy.Services = legacy.Services[:1]
	conv := NewConverter(&staticResolver{doc: legacy}, mockClock())

	_, err := conv.Convert(context.Background(), testDID)
	if !errors.Is(err, ErrMissingService) {
		t.Fatalf("expected ErrMissingService, got %v", err)
	}

	if _, err := conv.ConvertDocument(testDID, nil); !errors.Is(err, ErrMissingService) {
		t.Fatalf("expected ErrMissingService for nil document, got %v", err)
	}
}

func TestConverter_DefaultClock(t *testing.T) {
	conv := NewConverter(&staticResolver{doc: loadLegacy(t)}, nil)

	got, err := conv.Convert(context.Background(), testDID)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	ts, err := time.Parse(time.RFC3339, got.Metadata.Created)
	if err != nil {
		t.Fatalf("created is not RFC 3339: %v", err)
	}
	if time.Since(ts) > time.Minute {
		t.Fatalf("created too far in the past: %s", got.Metadata.Created)
	}
}
