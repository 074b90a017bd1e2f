package search

import (
	"sort"
	"strings"

	"github.com/spec-kit/account-console/internal/domain"
	"github.com/spec-kit/account-console/internal/fuzzy"
)

// Result pairs an account with its best key score.
type Result struct {
	Account domain.Account
	Score   float64
}

// Filter returns the accounts matching query, best match first. An empty
// query returns a copy of accounts in their original order. The input slice
// is never modified.
func Filter(accounts []domain.Account, query string, opts fuzzy.Options) []domain.Account {
	results := Rank(accounts, query, opts)
	out := make([]domain.Account, len(results))
	for i, r := range results {
		out[i] = r.Account
	}
	return out
}

// Rank is Filter with scores attached.
func Rank(accounts []domain.Account, query string, opts fuzzy.Options) []Result {
	pattern := fuzzy.Fold(strings.TrimSpace(query))
	if pattern == "" {
		out := make([]Result, len(accounts))
		for i, account := range accounts {
			out[i] = Result{Account: account}
		}
		return out
	}

	out := make([]Result, 0, len(accounts))
	for _, account := range accounts {
		if score, ok := scoreAccount(account, pattern, opts); ok {
			out = append(out, Result{Account: account, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}

// searchKeys lists the fields a query is matched against.
func searchKeys(a domain.Account) [4]string {
	return [4]string{a.FirstName, a.LastName, a.Email, a.StatusText()}
}

func scoreAccount(account domain.Account, pattern string, opts fuzzy.Options) (float64, bool) {
	best, matched := 1.0, false
	for _, key := range searchKeys(account) {
		if key == "" {
			continue
		}
		score, ok := fuzzy.Score(fuzzy.Fold(key), pattern, opts)
		if ok && (!matched || score < best) {
			best, matched = score, true
		}
	}
	return best, matched
}
