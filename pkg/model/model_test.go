package model

import (
	"encoding/json"
	"testing"
)

func TestLinks_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "Plain strings",
			input: `["https://a.example", "https://b.example"]`,
			want:  []string{"https://a.example", "https://b.example"},
		},
		{
			name:  "Link objects",
			input: `[{"name":"sample","type":"sample","url":"https://a.example/sample.csv"}]`,
			want:  []string{"https://a.example/sample.csv"},
		},
		{
			name:  "Mixed",
			input: `["https://a.example", {"url":"https://b.example"}]`,
			want:  []string{"https://a.example", "https://b.example"},
		},
		{
			name:  "Null",
			input: `null`,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Links
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("link %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}

	var bad Links
	if err := json.Unmarshal([]byte(`[42]`), &bad); err == nil {
		t.Fatal("expected error for numeric link")
	}
}

func TestEndpointDirectory_PreservesOrder(t *testing.T) {
	raw := `{
		"providerAddress": "0x00bd138abd70e2f00903268f3db08f2d25677c9e",
		"serviceEndpoints": {
			"nonce": ["GET", "/api/services/nonce"],
			"encrypt": ["POST", "/api/services/encrypt"],
			"fileinfo": ["POST", "/api/services/fileinfo"],
			"initialize": ["GET", "/api/services/initialize"],
			"download": ["GET", "/api/services/download"]
		}
	}`

	var info ProviderInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	wantNames := []string{"nonce", "encrypt", "fileinfo", "initialize", "download"}
	if len(info.ServiceEndpoints) != len(wantNames) {
		t.Fatalf("got %d endpoints, want %d", len(info.ServiceEndpoints), len(wantNames))
	}
	for i, name := range wantNames {
		if info.ServiceEndpoints[i].Name != name {
			t.Fatalf("endpoint %d = %q, want %q", i, info.ServiceEndpoints[i].Name, name)
		}
	}
	if e := info.ServiceEndpoints[1]; e.Method != "POST" || e.Path != "/api/services/encrypt" {
		t.Fatalf("unexpected encrypt entry: %#v", e)
	}
	if len(info.ProviderAddress) == 0 {
		t.Fatal("expected providerAddress to be kept")
	}

	out, err := json.Marshal(info.ServiceEndpoints)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var again EndpointDirectory
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("Unmarshal re-encoded: %v", err)
	}
	if len(again) != len(wantNames) || again[4].Name != "download" {
		t.Fatalf("re-encoded directory lost order: %s", out)
	}
}

func TestEndpointDirectory_Invalid(t *testing.T) {
	for _, raw := range []string{
		`["GET", "/api"]`,
		`"nonce"`,
		`{"nonce": ["GET", "/api"]`,
	} {
		var d EndpointDirectory
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestEndpointDirectory_SkipsMalformedEntries(t *testing.T) {
	raw := `{
		"nonce": ["GET", "/api/services/nonce"],
		"short": ["GET"],
		"text": "GET /api",
		"numbers": [1, 2],
		"nested": {"method": "GET"},
		"encrypt": ["POST", "/api/services/encrypt"]
	}`

	var d EndpointDirectory
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(d) != 2 || d[0].Name != "nonce" || d[1].Name != "encrypt" {
		t.Fatalf("unexpected directory: %#v", d)
	}
}

func TestLegacyDDO_Decode(t *testing.T) {
	raw := `{
		"@context": "https://w3id.org/did/v1",
		"id": "did:op:0bD5Ca2dF8aF9A1B4a1f2D8aC2c6C9e7A1b2C3d4",
		"chainId": 137,
		"dataToken": "0x0bD5Ca2dF8aF9A1B4a1f2D8aC2c6C9e7A1b2C3d4",
		"dataTokenInfo": {"address": "0x0bD5Ca2dF8aF9A1B4a1f2D8aC2c6C9e7A1b2C3d4", "name": "Tidal Lobster", "symbol": "TIDLOB-12", "decimals": 18, "cap": 1000},
		"service": [
			{"type": "metadata", "index": 0, "serviceEndpoint": "https://aquarius.oceanprotocol.com/api/v1/aquarius/assets/ddo/did:op:0bd5",
			 "attributes": {"main": {"type": "dataset", "name": "Weather", "author": "Met", "license": "CC0"},
			                "additionalInformation": {"description": "daily", "tags": ["weather"], "links": [{"url": "https://example.com/sample"}], "termsAndConditions": true}}},
			{"type": "access", "index": 1, "serviceEndpoint": "https://provider.oceanprotocol.com",
			 "attributes": {"main": {"name": "dataAssetAccessServiceAgreement", "timeout": 86400}}}
		]
	}`

	var doc LegacyDDO
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.ChainID != 137 || len(doc.Services) != 2 {
		t.Fatalf("unexpected document: %#v", doc)
	}
	if doc.Services[1].Attributes.Main.Timeout != 86400 {
		t.Fatalf("unexpected timeout: %d", doc.Services[1].Attributes.Main.Timeout)
	}
	if got := doc.Services[0].Attributes.AdditionalInformation.Links; len(got) != 1 || got[0] != "https://example.com/sample" {
		t.Fatalf("unexpected links: %v", got)
	}
	if doc.DataTokenInfo.Cap.String() != "1000" {
		t.Fatalf("unexpected cap: %s", doc.DataTokenInfo.Cap)
	}
}
