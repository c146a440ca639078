// Package filter narrows account lists for display. Filtering is stable and
// deterministic: the output keeps the input's relative order and identical
// inputs always produce identical results.
package filter

import (
	"strings"

	"bank-dashboard/internal/models"
)

type Status string

const (
	StatusAll    Status = "all"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// ParseStatus maps a query-string value onto a Status. Anything
// unrecognized, including the empty string, means no status narrowing.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusActive:
		return StatusActive
	case StatusClosed:
		return StatusClosed
	default:
		return StatusAll
	}
}

// Apply returns the subsequence of accounts matching both the status
// predicate and the free-text query. The query is a case-insensitive
// substring match against account number or holder name; empty matches
// everything.
func Apply(accounts []models.Account, status Status, query string) []models.Account {
	needle := strings.ToLower(strings.TrimSpace(query))

	matched := make([]models.Account, 0, len(accounts))
	for _, account := range accounts {
		if status == StatusActive && !account.IsActive {
			continue
		}
		if status == StatusClosed && account.IsActive {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(account.AccountNumber), needle) &&
			!strings.Contains(strings.ToLower(account.HolderName), needle) {
			continue
		}
		matched = append(matched, account)
	}
	return matched
}
