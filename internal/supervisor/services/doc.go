// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

/*
Package services adapts long-running tenantlog components to suture.Service.

	HTTPServerService   binds the listen address and serves the router,
	                    shutting down gracefully when its context ends
	ConfigWatchService  keeps a config file watch running and stops it on exit

Both implement fmt.Stringer so supervisor events name them.
*/
package services
