package queries

import (
	"context"

	"parkingbot/internal/domain/claim"
	"parkingbot/internal/usecase"
)

// ClaimView is an upcoming claim with its holder's name resolved.
type ClaimView struct {
	Date         claim.Date
	ClaimantID   string
	ClaimantName string
}

//go:generate mockgen -source=claims.go -destination=../../../tests/mock/queries/claims.go -package=queriesmock
type ClaimQueries interface {
	Upcoming(ctx context.Context) ([]ClaimView, error)
}

type claimQueriesImpl struct {
	reservations usecase.ReservationStore
	identities   usecase.IdentityCache
}

func NewClaimQueries(reservations usecase.ReservationStore, identities usecase.IdentityCache) ClaimQueries {
	return &claimQueriesImpl{
		reservations: reservations,
		identities:   identities,
	}
}

// Upcoming has the same expiry side effects as ReservationStore.ListUpcoming.
// Names are full names where the directory has one.
func (q *claimQueriesImpl) Upcoming(ctx context.Context) ([]ClaimView, error) {
	claims, err := q.reservations.ListUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	views := make([]ClaimView, 0, len(claims))
	for _, c := range claims {
		name, ok := names[c.ClaimantID()]
		if !ok {
			name, err = q.identities.Resolve(ctx, c.ClaimantID(), true)
			if err != nil {
				return nil, err
			}
			names[c.ClaimantID()] = name
		}
		views = append(views, ClaimView{
			Date:         c.Date(),
			ClaimantID:   c.ClaimantID(),
			ClaimantName: name,
		})
	}
	return views, nil
}
