// Package loader mounts the HTTP features of the service.
//
// Every rules family and the integrity checks are a Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps them in registration order. LoadAll skips disabled features
// and stops at the first Load error, naming the feature that failed.
package loader
