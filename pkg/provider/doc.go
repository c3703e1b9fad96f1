// Package provider is a client for the REST API of an Ocean provider.
//
// # Discovery
//
// A provider advertises its endpoints in a discovery document served at its
// root URL:
//
//	{"serviceEndpoints": {"nonce": ["GET", "/api/services/nonce"], ...}}
//
// Every operation fetches this document, resolves the endpoints against the
// provider URI (GetServiceEndpoints) and looks up the one it needs
// (GetEndpointURL). When the provider does not advertise that endpoint the
// operation returns its zero value and a nil error without calling it.
//
// # Operations
//
//	c := provider.New(nil, nil)
//
//	nonce, err := c.GetNonce(ctx, providerURI, consumer)
//	encrypted, err := c.Encrypt(ctx, providerURI, files)
//	files := c.CheckFileURL(ctx, providerURI, "https://example.com/data.csv")
//	fees, err := c.Initialize(ctx, providerURI, provider.InitializeParams{...})
//	url, err := c.GetDownloadURL(ctx, providerURI, provider.DownloadParams{...})
//	ok := c.IsValidProvider(ctx, providerURI)
//
// # Error Policies
//
// Operations differ in how they fail:
//
//   - GetNonce and Encrypt return ErrRequestFailed.
//   - Initialize returns ErrAssetNotAvailable. A rejected request also
//     carries the provider's answer as a *ResponseError.
//   - CheckDidFiles, CheckFileURL and CheckFileIPFS return nil silently.
//   - GetEndpoints returns nil and logs.
//   - IsValidProvider returns false and logs.
//
// # Query Strings
//
// Query values are appended as given. Custom user parameters are JSON
// encoded and percent-escaped the way the ECMAScript encodeURI function
// does, which is what providers expect.
//
// # Signatures
//
// Download URLs carry a nonce (current time in milliseconds) and a
// signature over the DID followed by that nonce, produced by a Signer.
// KeySigner signs with a local key.
package provider
