package model

import (
	"encoding/json"
	"fmt"
)

const (
	// DDOContext is the single JSON-LD context of a current DDO.
	DDOContext = "https://w3id.org/did/v1"
	// DDOVersion is the schema version written by the converter.
	DDOVersion = "4.0.0"
)

// LegacyDDO is a v3 DDO as returned by the legacy metadata cache. Only the
// fields read by the converter are modeled.
type LegacyDDO struct {
	Context       json.RawMessage `json:"@context,omitempty"`
	ID            string          `json:"id"`
	Created       string          `json:"created,omitempty"`
	ChainID       int64           `json:"chainId"`
	DataToken     string          `json:"dataToken"`
	DataTokenInfo DataTokenInfo   `json:"dataTokenInfo"`
	Services      []LegacyService `json:"service"`
}

// DataTokenInfo describes the data token bound to a legacy asset.
type DataTokenInfo struct {
	Address  string      `json:"address"`
	Name     string      `json:"name"`
	Symbol   string      `json:"symbol"`
	Decimals int         `json:"decimals"`
	Cap      json.Number `json:"cap,omitempty"`
}

// LegacyService is one entry of a legacy DDO's ordered service list. By
// convention index 0 is the metadata service and index 1 the access service.
type LegacyService struct {
	Type            string           `json:"type"`
	Index           int              `json:"index"`
	ServiceEndpoint string           `json:"serviceEndpoint"`
	Attributes      LegacyAttributes `json:"attributes"`
}

// LegacyAttributes groups the main and additional attributes of a legacy service.
type LegacyAttributes struct {
	Main                  LegacyMain                  `json:"main"`
	AdditionalInformation LegacyAdditionalInformation `json:"additionalInformation"`
}

// LegacyMain holds the main attributes of a legacy service.
type LegacyMain struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Author      string `json:"author"`
	License     string `json:"license"`
	DateCreated string `json:"dateCreated,omitempty"`
	Timeout     int64  `json:"timeout"`
}

// LegacyAdditionalInformation holds the free-form attributes of a legacy service.
type LegacyAdditionalInformation struct {
	Description        string   `json:"description"`
	Tags               []string `json:"tags"`
	Links              Links    `json:"links"`
	TermsAndConditions bool     `json:"termsAndConditions"`
}

// Links is a list of link URLs. Legacy documents store links either as plain
// strings or as {name, type, url} objects; both decode to the URL.
type Links []string

// UnmarshalJSON accepts an array of strings, an array of objects with a url
// field, or a mix of both.
func (l *Links) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}
	out := make(Links, 0, len(raw))
	for i, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("link %d: %w", i, err)
		}
		out = append(out, obj.URL)
	}
	*l = out
	return nil
}

// DDO is a current (v4) DDO.
type DDO struct {
	Context    []string  `json:"@context"`
	ID         string    `json:"id"`
	Version    string    `json:"version"`
	ChainID    int64     `json:"chainId"`
	NFTAddress string    `json:"nftAddress"`
	Metadata   Metadata  `json:"metadata"`
	Services   []Service `json:"services"`
}

// Metadata describes the asset of a current DDO.
type Metadata struct {
	Created               string                `json:"created"`
	Updated               string                `json:"updated"`
	Type                  string                `json:"type"`
	Name                  string                `json:"name"`
	Description           string                `json:"description"`
	Tags                  []string              `json:"tags,omitempty"`
	Links                 []string              `json:"links,omitempty"`
	Author                string                `json:"author"`
	License               string                `json:"license"`
	AdditionalInformation AdditionalInformation `json:"additionalInformation"`
}

// AdditionalInformation carries optional metadata of a current DDO.
type AdditionalInformation struct {
	TermsAndConditions bool `json:"termsAndConditions"`
}

// Service is an access service of a current DDO. Files holds the encrypted
// file list and stays empty until the files are encrypted by a provider.
type Service struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Files            string `json:"files"`
	DatatokenAddress string `json:"datatokenAddress"`
	ServiceEndpoint  string `json:"serviceEndpoint"`
	Timeout          int64  `json:"timeout"`
}
