// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import "net/url"

// DoubleEscapePathSegment percent-encodes a URL path segment twice.
//
// Zoom meeting UUIDs can begin with "/" or contain "//", and the Zoom API
// requires such identifiers to be double encoded before they are embedded in
// a request path. Identifiers without reserved characters round-trip
// unchanged, so this is safe to apply unconditionally.
func DoubleEscapePathSegment(segment string) string {
	return url.PathEscape(url.PathEscape(segment))
}
