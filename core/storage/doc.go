// Package storage provides the object storage client used as a rules document source.
//
// It wraps the MinIO Go client behind a small Client interface so that catalog
// sources and the integrity fixes can be tested with core/storage/mocks.
// Both AWS S3 and self-hosted MinIO endpoints are supported.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, "rules", "rules/realms.json", minio.GetObjectOptions{})
package storage
