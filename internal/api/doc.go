// Package api exposes the entry and user services over HTTP: routing, JSON
// request decoding, error-to-status mapping and response shaping.
package api
