// Package models defines the core domain models for SpendWise.
//
// # Form Models
//
// The expense form works on a small in-memory working set:
//   - Member: one group member eligible to share an expense
//   - SplitMode: how the total is divided among included members
//   - Category: one of twelve fixed expense categories
//
// # Backend Payloads
//
// Everything else mirrors the JSON contract of the SpendWise backend API,
// which owns persistence, balances and authentication:
//   - ExpenseRequest / SplitShare: body of AddExpense
//   - SettleUpRequest / SettledExpense: body of SettleUp
//   - GroupPage / GroupMember / Debt / Leave / Transaction: the group page read model
//   - Dashboard / Group / JoinRequest: group membership and join requests
//   - Profile / User: the logged-in user
//
// JSON field names follow the backend exactly, including its mixed casing
// (PascalCase on request bodies, camelCase on read models).
package models
