// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use and shared, so struct
// metadata is cached across calls. Besides the built-in tags it registers:
//
//	headername  valid HTTP header field name (golang.org/x/net/http/httpguts)
//	tenantid    tenant identifier accepted by the tenant resolver
//
// # Usage
//
//	type createItemRequest struct {
//	    Name     string `json:"name" validate:"required,max=100"`
//	    Quantity int    `json:"quantity" validate:"gte=0,lte=10000"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // verr.Error() joins every message, verr.FieldMessages() keys them by field
//	}
//
// Field names in messages are namespaced ("Config.Server.Port") so nested
// configuration errors point at the exact setting.
package validation
