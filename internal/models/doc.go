// Package models defines the core domain models for taxwiser.
//
// # Models
//
//   - FilingProfile: the intake choices (tax type, filing status, age/blind
//     flags, Indiana county) that parameterize every rule-table lookup
//   - FormState: every line value of one return, partitioned by Ledger
//   - SavedReturn: a FormState persisted under the user's email
//   - User: a person who has signed in with email and first name
//
// # Design Principles
//
//  1. Amounts are decimals at cent precision, never floats
//  2. A FilingProfile is fixed for the life of a session; changing filing
//     status means starting a new return
//  3. Relationships use string keys (email, ID) rather than pointers
package models
