// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools provides the typed function tool and the built-in tools every agent may use.
//
// [FunctionTool] wraps a typed handler:
//
//	type skuArgs struct {
//		SKU string `json:"sku" description:"the SKU to look up"`
//	}
//
//	sku := tools.MustFunctionTool("get_sku_details", "Gets the details of a SKU.", nil,
//		func(ctx context.Context, toolCtx *types.ToolContext, args skuArgs) (skuResult, error) {
//			...
//		})
//
// The parameter schema is derived from the argument struct unless one is
// given. Handler errors are reported to the model as
// {"status": "error", "message": ...}.
package tools
