// Package facturas provides the types and logic for a small, local-first
// inventory and invoicing system. All state lives in two flat files: a
// pipe-delimited product catalog and a newline-delimited JSON invoice log.
//
// The core functionalities include:
//   - Catalog Management: Creating, searching, updating and deleting
//     products, with name-uniqueness and non-negative field constraints.
//   - Invoice Ledger: Creating, editing and deleting invoices while keeping
//     product stock consistent with every committed invoice. Stock is
//     debited when an invoice is committed and credited back when it is
//     deleted; edits move stock by the net per-product delta.
//   - Data Persistence: Encoding and decoding both collections to and from
//     human-readable flat files, tolerating (and counting) corrupt lines.
//
// Every operation is a whole-snapshot read-modify-write cycle against a
// Store: there is no shared in-memory state between operations, and each
// operation either completes fully or leaves persisted state untouched.
//
// This package serves as the foundational logic for the `fac` command-line
// tool.
package facturas
