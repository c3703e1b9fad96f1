package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/model"
	"go.uber.org/zap"
)

// InitializeParams are the inputs of an initialize request.
type InitializeParams struct {
	DID                  string
	ServiceID            string
	FileIndex            int
	ConsumerAddress      string
	UserCustomParameters model.UserCustomParameters
	ComputeEnv           string
	ValidUntil           int64
}

// DownloadParams are the inputs of a signed download URL.
type DownloadParams struct {
	DID                  string
	ServiceID            string
	FileIndex            int
	TransferTxID         string
	ConsumerAddress      string
	UserCustomParameters model.UserCustomParameters
	Signer               Signer
}

// GetNonce returns the provider's current nonce for consumerAddress, as a
// decimal string.
//
// It returns "" and a nil error when the provider has no nonce endpoint, and
// ErrRequestFailed when discovery or the request fails or the answer has no
// nonce.
func (c *Client) GetNonce(ctx context.Context, providerURI, consumerAddress string) (string, error) {
	e, err := c.endpoint(ctx, providerURI, EndpointNonce)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if e == nil {
		return "", nil
	}

	url := e.URLPath + "?userAddress=" + consumerAddress
	status, body, err := c.send(ctx, http.MethodGet, url, contentTypeJSON, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if !ok(status) {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, &ResponseError{StatusCode: status, Body: string(body)})
	}

	var resp struct {
		Nonce any `json:"nonce"`
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	nonce, err := formatNonce(resp.Nonce)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	return nonce, nil
}

func formatNonce(v any) (string, error) {
	switch n := v.(type) {
	case string:
		return n, nil
	case json.Number:
		if !strings.ContainsAny(n.String(), ".eE") {
			return n.String(), nil
		}
		f, err := n.Float64()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("response has no nonce")
	default:
		return "", fmt.Errorf("unexpected nonce %v", v)
	}
}

// Encrypt asks the provider to encrypt data with its own key and returns the
// encrypted payload as the provider sends it.
//
// data is JSON encoded and sent as application/octet-stream, after the
// percent escapes of the JSON text are decoded. It returns "" and a nil error
// when the provider has no encrypt endpoint, and ErrRequestFailed when
// discovery fails, the payload cannot be encoded or the request fails.
func (c *Client) Encrypt(ctx context.Context, providerURI string, data any) (string, error) {
	e, err := c.endpoint(ctx, providerURI, EndpointEncrypt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if e == nil {
		return "", nil
	}

	text, err := marshalJSON(data)
	if err != nil {
		return "", fmt.Errorf("%w: encode payload: %w", ErrRequestFailed, err)
	}
	payload, err := decodeURI(text)
	if err != nil {
		return "", fmt.Errorf("%w: encode payload: %w", ErrRequestFailed, err)
	}

	status, body, err := c.send(ctx, http.MethodPost, e.URLPath, contentTypeOctetStream, []byte(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if !ok(status) {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, &ResponseError{StatusCode: status, Body: string(body)})
	}
	return string(body), nil
}

// CheckDidFiles returns the file information of a published asset's service.
// It returns nil when the provider has no fileinfo endpoint or on any failure.
func (c *Client) CheckDidFiles(ctx context.Context, providerURI, did, serviceID string) []model.FileMetadata {
	return c.fileInfo(ctx, providerURI, map[string]any{
		"did":       did,
		"serviceId": serviceID,
	})
}

// CheckFileURL returns the file information of a URL.
// It returns nil when the provider has no fileinfo endpoint or on any failure.
func (c *Client) CheckFileURL(ctx context.Context, providerURI, url string) []model.FileMetadata {
	return c.fileInfo(ctx, providerURI, map[string]any{
		"url":  url,
		"type": "url",
	})
}

// CheckFileIPFS returns the file information of an IPFS object. Hashes that
// are not valid CIDs are rejected without a request.
// It returns nil when the provider has no fileinfo endpoint or on any failure.
func (c *Client) CheckFileIPFS(ctx context.Context, providerURI, hash string) []model.FileMetadata {
	if _, err := cid.Decode(hash); err != nil {
		zap.L().Debug("Not a valid CID", zap.String("hash", hash), zap.Error(err))
		return nil
	}
	return c.fileInfo(ctx, providerURI, map[string]any{
		"hash": hash,
		"type": "ipfs",
	})
}

func (c *Client) fileInfo(ctx context.Context, providerURI string, args map[string]any) []model.FileMetadata {
	e, err := c.endpoint(ctx, providerURI, EndpointFileInfo)
	if err != nil || e == nil {
		return nil
	}
	payload, err := json.Marshal(args)
	if err != nil {
		return nil
	}
	_, body, err := c.send(ctx, http.MethodPost, e.URLPath, contentTypeJSON, payload)
	if err != nil {
		return nil
	}
	var files []model.FileMetadata
	if err := json.Unmarshal(body, &files); err != nil {
		return nil
	}
	return files
}

// Initialize asks the provider for the datatoken, nonce and provider fee
// needed to order a service.
//
// The query carries documentId, serviceId, fileIndex and consumerAddress,
// followed by userdata when custom parameters are given, environment when
// ComputeEnv is set and validUntil when positive. It returns nil and a nil
// error when the provider has no initialize endpoint, and
// ErrAssetNotAvailable when discovery or the request fails or the request is
// rejected.
func (c *Client) Initialize(ctx context.Context, providerURI string, p InitializeParams) (*model.ProviderInitialize, error) {
	e, err := c.endpoint(ctx, providerURI, EndpointInitialize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetNotAvailable, err)
	}
	if e == nil {
		return nil, nil
	}

	var q query
	q.add("documentId", p.DID)
	q.add("serviceId", p.ServiceID)
	q.add("fileIndex", strconv.Itoa(p.FileIndex))
	q.add("consumerAddress", p.ConsumerAddress)
	if p.UserCustomParameters != nil {
		userdata, err := marshalJSON(p.UserCustomParameters)
		if err != nil {
			return nil, fmt.Errorf("encode userdata: %w", err)
		}
		q.add("userdata", encodeURI(userdata))
	}
	if p.ComputeEnv != "" {
		q.add("environment", encodeURI(p.ComputeEnv))
	}
	if p.ValidUntil > 0 {
		q.add("validUntil", strconv.FormatInt(p.ValidUntil, 10))
	}

	status, body, err := c.send(ctx, http.MethodGet, e.URLPath+q.String(), contentTypeJSON, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetNotAvailable, err)
	}
	if !ok(status) {
		return nil, fmt.Errorf("%w: %w", ErrAssetNotAvailable, &ResponseError{StatusCode: status, Body: string(body)})
	}

	var resp model.ProviderInitialize
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetNotAvailable, err)
	}
	return &resp, nil
}

// GetDownloadURL builds a signed download URL. No request is made to the
// download endpoint itself.
//
// The nonce is the current time in milliseconds and the signature covers
// DID followed by the nonce. It returns "" and a nil error when the provider
// has no download endpoint, and ErrRequestFailed when discovery fails.
func (c *Client) GetDownloadURL(ctx context.Context, providerURI string, p DownloadParams) (string, error) {
	if p.Signer == nil {
		return "", fmt.Errorf("download URL: no signer")
	}
	e, err := c.endpoint(ctx, providerURI, EndpointDownload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if e == nil {
		return "", nil
	}

	nonce := strconv.FormatInt(c.clock.Now().UnixMilli(), 10)
	signature, err := CreateSignature(p.Signer, p.ConsumerAddress, p.DID+nonce)
	if err != nil {
		return "", fmt.Errorf("sign download request: %w", err)
	}

	var q query
	q.add("documentId", p.DID)
	q.add("serviceId", p.ServiceID)
	q.add("fileIndex", strconv.Itoa(p.FileIndex))
	q.add("transferTxId", p.TransferTxID)
	q.add("consumerAddress", p.ConsumerAddress)
	q.add("nonce", nonce)
	q.add("signature", signature)
	if p.UserCustomParameters != nil {
		userdata, err := marshalJSON(p.UserCustomParameters)
		if err != nil {
			return "", fmt.Errorf("encode userdata: %w", err)
		}
		q.add("userdata", encodeURI(userdata))
	}
	return e.URLPath + q.String(), nil
}
