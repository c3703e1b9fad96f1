package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// ProviderInfo is the discovery document served at a provider's root URL.
// ProviderAddress is kept raw because providers report either a single
// address or a chain-id to address map.
type ProviderInfo struct {
	ProviderAddress  json.RawMessage   `json:"providerAddress,omitempty"`
	Software         string            `json:"software,omitempty"`
	Version          string            `json:"version,omitempty"`
	ServiceEndpoints EndpointDirectory `json:"serviceEndpoints"`
}

// EndpointEntry is one raw entry of the discovery document: a service name
// mapped to an HTTP method and a path relative to the provider URI.
type EndpointEntry struct {
	Name   string
	Method string
	Path   string
}

// EndpointDirectory is the serviceEndpoints object of a discovery document,
// {name: [method, path]}, decoded in document order. Entries that are not a
// [method, path] pair of strings are skipped.
type EndpointDirectory []EndpointEntry

// UnmarshalJSON decodes the serviceEndpoints object preserving key order.
func (d *EndpointDirectory) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("serviceEndpoints: expected object, got %v", tok)
	}

	var out EndpointDirectory
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("serviceEndpoints: unexpected key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("serviceEndpoints.%s: %w", name, err)
		}
		var pair []string
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) < 2 {
			zap.L().Debug("Skipping malformed provider endpoint", zap.String("endpoint", name), zap.ByteString("value", raw))
			continue
		}
		out = append(out, EndpointEntry{Name: name, Method: pair[0], Path: pair[1]})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}

// MarshalJSON encodes the directory back into a {name: [method, path]} object.
func (d EndpointDirectory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal([]string{e.Method, e.Path})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ServiceEndpoint is a resolved catalog entry: URLPath is the provider URI
// joined with the advertised path.
type ServiceEndpoint struct {
	ServiceName string `json:"serviceName"`
	Method      string `json:"method"`
	URLPath     string `json:"urlPath"`
}

// UserCustomParameters are consumer-supplied parameters forwarded to the
// provider as the userdata query parameter.
type UserCustomParameters map[string]any

// FileMetadata is one entry of a provider fileinfo response.
type FileMetadata struct {
	Type          string      `json:"type,omitempty"`
	Index         int         `json:"index"`
	Valid         bool        `json:"valid"`
	URL           string      `json:"url,omitempty"`
	Method        string      `json:"method,omitempty"`
	ContentLength json.Number `json:"contentLength,omitempty"`
	ContentType   string      `json:"contentType,omitempty"`
	Checksum      string      `json:"checksum,omitempty"`
	ChecksumType  string      `json:"checksumType,omitempty"`
}

// ProviderFees is the signed provider fee returned by initialize.
type ProviderFees struct {
	ProviderFeeAddress string      `json:"providerFeeAddress"`
	ProviderFeeToken   string      `json:"providerFeeToken"`
	ProviderFeeAmount  json.Number `json:"providerFeeAmount"`
	V                  json.Number `json:"v"`
	R                  string      `json:"r"`
	S                  string      `json:"s"`
	ProviderData       string      `json:"providerData"`
	ValidUntil         json.Number `json:"validUntil"`
}

// ProviderInitialize is the provider's answer to an initialize request.
type ProviderInitialize struct {
	Datatoken      string       `json:"datatoken"`
	Nonce          json.Number  `json:"nonce"`
	ComputeAddress string       `json:"computeAddress,omitempty"`
	ProviderFee    ProviderFees `json:"providerFee"`
}
