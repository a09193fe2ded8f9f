// Package core provides the business logic for spreadsheet record imports.
//
// This package holds all domain logic independent of any transport or
// storage backend. The web handlers and the sheetctl CLI both drive the same
// [Service]; backends plug in through the [Store], [Parser] and [Writer]
// interfaces.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Rows: a parsed sheet row is a [Row] keyed by header name.
//   - Schema: [RecordSchema] lists one rule per column and reports every
//     failure of a row in column order.
//   - Duplicates: [DetectDuplicates] flags keys repeated inside a file and
//     keys already in the store.
//   - Service: the entry point for validate, import, export and template.
//
// # Validate and Import
//
// [Service.Validate] is a read-only dry run. It returns a [ValidationReport]
// with every row problem and a preview of the first [PreviewSize] rows.
//
// [Service.Import] re-checks every row on its own and writes the acceptable
// ones with a single [Store.CreateBatch] call:
//
//  1. Rows failing the schema are rejected
//  2. Rows whose standardid is already queued or stored are rejected
//  3. The remaining rows are written together, or not at all
//
// Both calls hold a slot of the [UploadLimiter] for their whole run.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages using [MapError].
// Each error category has a code for support reference:
//
//   - DB001-DB007: Store errors (duplicates, lookups, connections)
//   - VAL001-VAL003: Validation errors (records, dates, export columns)
//   - FILE001-FILE005: File errors (size, format, missing upload)
//   - UPL002-UPL005: Upload errors (capacity, cancelled, timeout)
package core
