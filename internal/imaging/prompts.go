// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package imaging

import (
	"github.com/MakeNowJust/heredoc/v2"
)

var preserveProduct = heredoc.Doc(`
	**CRITICAL INSTRUCTION: YOU MUST PRESERVE THE REFERENCE PRODUCT.**
	1.  **DO NOT ALTER THE PRODUCT:** The reference product (bottle, jar, etc.) must be used *exactly* as-is.
	2.  **PRESERVE ALL TEXT:** All text, logos, and branding on the reference product must be preserved perfectly. Do not regenerate, misspell, or change any text.
	3.  **PRESERVE APPEARANCE:** The product's shape, color, design, and label must remain identical to the reference image.
	4.  **ONLY CHANGE THE BACKGROUND/SCENE:** Your only task is to place the *unaltered* product into the new scene described in the user prompt.`)

var unbrandedProduct = heredoc.Doc(`
	The product in the generated image must be devoid of all text and graphics, while strictly preserving the original physical appearance, color, and shape of the reference object.

	### **CRITICAL INSTRUCTION: GENERATE AN UNBRANDED, BLANK VERSION OF THE REFERENCE PRODUCT WITH ALL ORIGINAL COLOURS PRESERVED.**
	1.  **GEOMETRY & MATERIAL ONLY:** Retain the exact physical shape, 3D geometry, material finish, and lighting of the reference bottle. However, treat the surface as a blank canvas while preserving the actual colours of the product bottle.
	2.  **STRICT TEXT REMOVAL:** The product must be completely devoid of any typography, alphanumeric characters, logos, or barcodes. There should be zero writing on the container.
	3.  **SURFACE CONTINUITY:** The bottle body must appear as a smooth, continuous surface. Where the label used to be, fill the area with the base material or the color as appropriate.
	4.  **FACTORY BLANK APPEARANCE:** The object should look like a factory prototype or a stock photo prop before the printing stage, but with all the colours preserved. It is an unbranded, generic container, with colours as that of the actual reference product, that strictly mimics the form factor of the reference.
	`)

var replaceBackground = heredoc.Doc(`
	**CRITICAL INSTRUCTION: YOU MUST PRESERVE THE REFERENCE PRODUCT.**
	1.  **PRODUCT PRESERVATION:** The reference product (bottle, jar, etc.) must be used *exactly* as-is. Do not change its lighting, angle, or position.
	2.  **TEXT IS SACRED:** All text, logos, and branding on the reference product must be preserved perfectly. Do not regenerate, misspell, or change any text.
	3.  **APPEARANCE INTEGRITY:** The product's shape, color, design, and label must remain identical to the reference image.
	4.  **COMPLETE BACKGROUND REPLACEMENT:** Completely replace the *entire background and scene* behind the product with the one described in the user request. No elements from the original background should remain.
	5.  **FOCUS ON NEW SCENE:** The new background is the dominant visual element behind the product.
	6.  **PHOTOREALISTIC LIGHTING & CONTRAST MATCHING:** The new background must match the lighting direction, intensity, color and contrast of the original product so the product looks naturally integrated.
	7.  **HARMONIOUS COLOR PALETTE:** The background colors complement the product without clashing.`)

// PreserveProductPrompt asks for a new scene around the unaltered reference product.
func PreserveProductPrompt(description string) string {
	return "USER PROMPT: " + description + ".\n\n---\n" + preserveProduct
}

// UnbrandedProductPrompt asks for a new scene around a label-free copy of the reference product.
func UnbrandedProductPrompt(description string) string {
	return "USER PROMPT: " + description + ".\n\n---\n" + unbrandedProduct
}

// ReplaceBackgroundPrompt asks for an image-to-image background replacement.
func ReplaceBackgroundPrompt(description string) string {
	return "USER REQUEST: " + description + "\n\n---\n" + replaceBackground
}
