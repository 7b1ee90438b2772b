// Package service contains the application-specific use cases of the finance
// tracker. EntryService validates and persists financial entries and manages
// their status; AuthService registers users and verifies credentials.
//
// Services receive their stores, transaction runner and collaborators through
// constructor injection and never depend on a concrete database.
//
// Error handling:
//   - Business rule and authentication failures are returned unwrapped as
//     *domain.BusinessRuleError / *domain.AuthenticationError so callers see
//     the exact user-facing message.
//   - domain.ErrMissingIdentity marks an update or delete without an ID.
//   - Infrastructure failures are wrapped in *ServiceError, keeping the chain
//     intact for errors.Is/errors.As.
package service
