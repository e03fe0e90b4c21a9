// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package auth provides bearer-token authentication for the reporting API.

The API is read-only, so there is a single role: any request carrying a valid
HS256 token signed with server.jwt_secret may read every report. When no
secret is configured the middleware lets every request through.

Usage Example:

	manager, err := auth.NewJWTManager(cfg.Server.JWTSecret, cfg.Server.TokenTTL)
	if err != nil {
	    return err
	}
	token, _ := manager.GenerateToken("report-viewer")
	r.Use(auth.Authenticate(manager))
*/
package auth
