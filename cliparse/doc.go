// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and
environment variables. Flags win over env vars.

# Settings

  - PORT (-p): server port (default 3318)
  - DATABASE_URL (-d): connection string, required
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - TOKEN_SECRET (-token-secret): access token signing secret, required
  - TOKEN_ISSUER (-token-issuer): expected token issuer, optional
  - MAX_BODY_BYTES (-max-body): request body cap (default 1 MiB)

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
*/
package cliparse
