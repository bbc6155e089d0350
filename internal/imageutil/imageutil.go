// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package imageutil holds helpers for image payloads and their names.
package imageutil

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"path"
	"slices"
	"strings"
	"time"
)

// DefaultExtension is used when a MIME type is unknown or not allowed.
const DefaultExtension = "png"

// DefaultDisplayName names uploads without a display name.
const DefaultDisplayName = "uploaded_image"

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeBase64 decodes a raw base64 string or a data URI.
//
// mimeType is the media type of a data URI and empty for raw input.
func DecodeBase64(s string) (data []byte, mimeType string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", errors.New("empty base64 input")
	}

	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", errors.New("malformed data uri: missing comma")
		}
		params := strings.Split(header, ";")
		if !slices.Contains(params[1:], "base64") {
			return nil, "", errors.New("data uri is not base64 encoded")
		}
		mimeType = strings.ToLower(params[0])
		s = payload
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, "", errors.New("empty base64 payload")
	}

	for _, enc := range encodings {
		if data, err = enc.DecodeString(s); err == nil {
			return data, mimeType, nil
		}
	}
	return nil, "", fmt.Errorf("decode base64: %w", err)
}

// EncodeDataURI returns data as a base64 data URI.
func EncodeDataURI(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ExtensionFromMIME returns the lowered subtype of mimeType.
//
// With allowed set, subtypes outside it fall back to [DefaultExtension], as
// do malformed types.
func ExtensionFromMIME(mimeType string, allowed ...string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return DefaultExtension
	}
	_, sub, ok := strings.Cut(mediaType, "/")
	if !ok || sub == "" {
		return DefaultExtension
	}
	if len(allowed) > 0 && !slices.Contains(allowed, sub) {
		return DefaultExtension
	}
	return sub
}

// ContentHash returns the first 16 hex characters of sha256(displayName || data).
func ContentHash(displayName string, data []byte) string {
	if displayName == "" {
		displayName = DefaultDisplayName
	}
	h := sha256.New()
	h.Write([]byte(displayName))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// UploadArtifactID returns the artifact id of an uploaded image.
//
// The same name and bytes always give the same id.
func UploadArtifactID(prefix, displayName string, data []byte, mimeType string) string {
	return prefix + ContentHash(displayName, data) + "." + ExtensionFromMIME(mimeType)
}

// SanitizeFilename keeps the base name and replaces characters outside [A-Za-z0-9._-] with '_'.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		name = ""
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
	if name == "" {
		return "image"
	}
	return name
}

// TimestampName returns YYYYMMDD_HHMMSSffffff.ext for t in UTC.
func TimestampName(t time.Time, ext string) string {
	t = t.UTC()
	return fmt.Sprintf("%s%06d.%s", t.Format("20060102_150405"), t.Nanosecond()/1000, ext)
}
