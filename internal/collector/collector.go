// Package collector gathers device-level attributes (model, manufacturer,
// interface, serial, partition style, health) for mounted volumes from the
// host's device-management interface. Everything here is best-effort: any
// lookup may come back empty and no failure ever propagates to the caller.
package collector
