// Package events provides types and interfaces for entry lifecycle notifications.
//
// Services emit an EntryEvent after a write has committed, without knowing which
// handlers will process it. Handlers include the AMQP publisher in
// internal/platform/amqp.
package events
