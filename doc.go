// Package debtbook provides a set of functions and types for maintaining
// year-indexed debt ledgers derived from a single master list of loan
// records. It is designed to be local-first, auditable, and extensible,
// ensuring users have full control and transparency over their debt data.
//
// The core functionalities include:
//   - Register Management: the master list of loan records (debt id,
//     principal, rate, term, origin year) as the single source of truth for
//     which debts exist anywhere.
//   - Amortization Expansion: projecting an edited record into one ledger
//     row per active year, carrying the ending balance of each year into the
//     starting balance of the next.
//   - Ledger Reconciliation: a global sweep clearing every ledger row keyed
//     by a debt that left the register, so derived tables never go stale.
//   - Formula Evaluation: derived columns (annual payment, principal paid,
//     ending balance) are declared as live formulas over their own row and
//     settled on demand through an injected evaluator.
//   - Data Persistence: encoding and decoding the register and the ledgers
//     to and from human-readable, version-controllable JSONL files.
//
// This package serves as the foundational logic for the `dbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package debtbook
