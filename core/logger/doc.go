// Package logger builds the zap logger shared by the commands, the catalogs
// and the HTTP features.
//
// Config.Level accepts any zap level name (debug, info, warn, error). Format is
// json for production or console for a terminal. Catalogs log load outcomes at
// info, degraded optional fields at warn and failed loads at error.
//
// Request handlers tag their lines with the ray id set by the rayid middleware:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Catalog load failed", zap.Error(err))
package logger
