// Package sqlite implements the store interfaces on an embedded SQLite
// database through the pure-Go modernc.org/sqlite driver. It is meant for
// single-node deployments and local development.
package sqlite
