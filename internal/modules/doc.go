// Package modules contains the self-contained application features.
//
// Each subdirectory is a module implementing `module.Module`. Modules are
// listed in `internal/server/kernel.go`, register their services with the
// server's injector and are booted on the root route group at startup.
package modules
