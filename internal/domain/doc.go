// Package domain defines core data models and interfaces shared across imkit.
// It contains plain types (action descriptors, signatures, profiles) and
// contracts (host callbacks, services, backend client, stores) only.
package domain
