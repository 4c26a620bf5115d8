// Package models defines the core domain models for the inventory CLI.
//
// # Models
//
//   - User: an operator account allowed to log in and register other users
//   - Product: a stocked item with a quantity that never goes negative
//
// Models carry no behavior beyond simple validation; persistence lives in
// the storage package and business rules in the service package.
//
// # Design Principles
//
//  1. Integer IDs assigned by the store (SQLite AUTOINCREMENT)
//  2. Passwords only ever appear here as a bcrypt hash
//  3. No references between models
package models
