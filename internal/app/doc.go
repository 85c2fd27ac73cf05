// Package app wires application dependencies for the binaries.
//
// Config is loaded from TOML, YAML or JSON (chosen by extension) with
// IMKIT_* environment overrides. NewWire builds the stores, the
// authorization gateway, the backend client and the services from it and
// exposes them through Wire. Watch re-reads the config file on change.
package app
