// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment variables.

CLI flags take precedence over environment variables:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Settings

  - -p / PORT: server port (default 5000)
  - -d / DATABASE_URL: PostgreSQL connection string (required)
  - -jwt-secret / JWT_SECRET: admin token signing secret (required)

Optional, environment only:

  - ADMIN_NAME, ADMIN_EMAIL, ADMIN_PASSWORD: seed credentials for the
    first admin account, consumed once at startup
*/
package cliparse
