// Package source provides the places a rules catalog can read its documents from.
//
//   - File: a directory on any afero filesystem (local disk, or the embedded
//     defaults through afero.FromIOFS)
//   - Storage: objects under a prefix in a MinIO/S3 bucket
//   - Database: rows of the rule_documents table
//
// Every source reports a missing document with an error wrapping
// catalog.ErrResourceNotFound; any other failure is passed through and the
// catalog classifies it as unreadable. Sources never cache.
//
// New picks one from configuration:
//
//	src, err := source.New(cfg.Catalog, source.Deps{Storage: store, Bucket: cfg.Storage.Bucket, DB: db})
package source
