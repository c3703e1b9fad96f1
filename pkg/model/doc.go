// Package model contains the document types shared by the converter and the
// provider client.
//
// # Legacy and Current DDOs
//
// LegacyDDO mirrors a v3 DDO as served by the legacy metadata cache: an
// ordered "service" list where index 0 carries the asset metadata and index 1
// the access service. DDO mirrors a v4 DDO with a single metadata block and a
// "services" list.
//
// Legacy link lists come in two shapes (plain URLs or {name, type, url}
// objects); Links normalizes both to URLs.
//
// # Provider Documents
//
// ProviderInfo is the discovery document at the provider root. Its
// serviceEndpoints object is decoded into an EndpointDirectory that keeps the
// provider's key order. FileMetadata and ProviderInitialize are the fileinfo
// and initialize responses. Numeric fields that providers emit either as
// strings or numbers use json.Number.
package model
