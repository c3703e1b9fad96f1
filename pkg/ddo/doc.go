// Package ddo converts legacy (v3) DDOs into the current (v4) schema.
//
// A Converter fetches the legacy document through a Resolver and reshapes it
// field by field. The lookup is positional: service 0 supplies the asset
// metadata, service 1 the access endpoint and timeout. The converted service
// carries an empty files field, to be filled by a later encryption step.
//
//	resolver := ddo.NewAquariusResolver("https://aquarius.oceanprotocol.com", nil)
//	doc, err := ddo.NewConverter(resolver, nil).Convert(ctx, did)
//
// Created and updated dates are the conversion time in UTC, truncated to
// whole seconds and suffixed with "Z".
package ddo
