package claim

import (
	"errors"
	"strings"
)

const KeyPrefix = "claimed_date:"

var ErrEmptyClaimant = errors.New("claimant id must not be empty")

// Claim is one date's reservation of the spot. Only the claimant's id is kept;
// names are resolved when a response is rendered.
type Claim struct {
	date       Date
	claimantID string
}

func NewClaim(date Date, claimantID string) (Claim, error) {
	if date.IsZero() {
		return Claim{}, ErrInvalidDate
	}
	if strings.TrimSpace(claimantID) == "" {
		return Claim{}, ErrEmptyClaimant
	}
	return Claim{date: date, claimantID: claimantID}, nil
}

func (c Claim) Date() Date             { return c.date }
func (c Claim) ClaimantID() string     { return c.claimantID }
func (c Claim) OwnedBy(id string) bool { return c.claimantID == id }

// IsExpired reports whether the claim's day is strictly before today.
func (c Claim) IsExpired(today Date) bool {
	return c.date.Before(today)
}

func Key(d Date) string {
	return KeyPrefix + d.String()
}

func DateFromKey(key string) (Date, error) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return Date{}, ErrInvalidDate
	}
	return ParseDate(strings.TrimPrefix(key, KeyPrefix))
}

// InsertSorted places c before the first entry with a later date.
func InsertSorted(claims []Claim, c Claim) []Claim {
	idx := len(claims)
	for i, existing := range claims {
		if existing.date.After(c.date) {
			idx = i
			break
		}
	}
	claims = append(claims, Claim{})
	copy(claims[idx+1:], claims[idx:])
	claims[idx] = c
	return claims
}
