// Package domain contains the core business entities of the finance tracker:
// financial entries and the users that own them. Entry validation and the
// error kinds surfaced to callers live here, independent of any storage or
// delivery mechanism.
package domain
