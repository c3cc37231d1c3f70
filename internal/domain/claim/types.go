package claim

type ClaimOutcome string

const (
	ClaimOK                 ClaimOutcome = "ok"
	ClaimAlreadyOwnedBySelf ClaimOutcome = "already_owned_by_self"
	ClaimConflict           ClaimOutcome = "conflict"
	ClaimPast               ClaimOutcome = "past"
)

func (o ClaimOutcome) String() string {
	return string(o)
}

type ClaimResult struct {
	Outcome ClaimOutcome
	// ExistingClaimantID is set only for ClaimConflict.
	ExistingClaimantID string
}

type UnclaimOutcome string

const (
	UnclaimReleased   UnclaimOutcome = "released"
	UnclaimConflict   UnclaimOutcome = "conflict"
	UnclaimNotClaimed UnclaimOutcome = "not_claimed"
)

func (o UnclaimOutcome) String() string {
	return string(o)
}

type UnclaimResult struct {
	Outcome            UnclaimOutcome
	ExistingClaimantID string
}
