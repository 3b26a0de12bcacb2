// Package integrity reports the health of the rules catalogs and of the
// backends the rules documents are read from.
//
// # Checks Provided
//
//   - Catalogs: loads every rules family and reports ok or error per family,
//     with the failure kind and each schema violation.
//   - Storage: checks that every rules document exists in the bucket under the
//     configured prefix.
//   - Database: checks that the rule_documents table has the expected columns
//     and a row per rules document.
//
//   - Reconcile: compares every document in storage and the database with the
//     embedded defaults by version and checksum (see core/reconcile).
//
// The storage and database checks can repair what they find missing by
// publishing the embedded default documents. Reconcile can also overwrite
// drifted copies, but only when asked to confirm.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/catalogs : Loads every catalog (500 if any fails).
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/database : Runs the database check (supports ?fix=true).
//   - GET /integrity/reconcile : Reports drift (supports ?restore, ?sync, ?confirm).
//   - GET /integrity/reconcile/:name : Reconciles one document.
package integrity
