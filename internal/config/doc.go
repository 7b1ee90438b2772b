// Package config loads server settings from defaults, an optional
// config.yaml, a .env file and FINANCAS_-prefixed environment variables,
// then validates them.
package config
