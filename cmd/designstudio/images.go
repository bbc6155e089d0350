// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/internal/imageutil"
)

// loadImage reads an image file, or decodes a data URI, into an inline part.
func loadImage(arg string) (*genai.Part, error) {
	if strings.HasPrefix(arg, "data:") {
		data, mimeType, err := imageutil.DecodeBase64(arg)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		if mimeType == "" {
			mimeType = http.DetectContentType(data)
		}
		return imagePart(data, mimeType)
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return imagePart(data, http.DetectContentType(data))
}

func imagePart(data []byte, mimeType string) (*genai.Part, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("not an image: detected %s", mimeType)
	}
	return genai.NewPartFromBytes(data, mimeType), nil
}
