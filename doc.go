// Package accounts keeps the books of a small organization, like a club or a
// society: its bank accounts and their statements, the funds money is
// earmarked for, the related parties it pays or is paid by, the ledger
// transactions between funds and parties, and the invoices of its suppliers.
//
// The core functionalities include:
//   - Store: every record lives in an arena, under a surrogate ID. Records
//     refer to each other by ID, and the store keeps a collection per kind
//     to enforce natural keys (account numbers, fund and party names, invoice
//     reasons).
//   - Bank Import: statements are imported into an account, duplicates are
//     skipped, and descriptions are linked to related parties through a
//     progressive prefix cache (see package link).
//   - Validation: account balances must follow from one transaction to the
//     next, and invoices must be settled by payments to their supplier.
//   - Data Persistence: records are written as one JSON object per line,
//     as a JSON array or as YAML. IDs are reassigned on load, and every
//     reference is rebuilt to follow them.
//
// This package serves as the foundational logic for the `acc` command-line
// tool.
package accounts
