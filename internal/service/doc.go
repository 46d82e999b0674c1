// Package service contains the application use cases. It coordinates domain
// values, stores (defined in internal/store) and the audit trail, and applies
// transactional boundaries where an operation touches several statements.
//
// Authentication and auditing live in the auth and audit subpackages.
package service
