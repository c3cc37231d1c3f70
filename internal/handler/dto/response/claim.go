package response

import (
	"parkingbot/internal/domain/claim"
	"parkingbot/internal/pkg/errs"
	"parkingbot/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ClaimResponse struct {
	Date         string `json:"date"`
	ClaimantID   string `json:"claimantId"`
	ClaimantName string `json:"claimantName"`
}

var dateToString = copier.TypeConverter{
	SrcType: claim.Date{},
	DstType: copier.String,
	Fn: func(src any) (any, error) {
		d, ok := src.(claim.Date)
		if !ok {
			return nil, errs.New("expected claim.Date")
		}
		return d.String(), nil
	},
}

func FromClaimViews(views []queries.ClaimView) ([]ClaimResponse, error) {
	out := make([]ClaimResponse, 0, len(views))
	err := copier.CopyWithOption(&out, &views, copier.Option{
		Converters: []copier.TypeConverter{dateToString},
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to map claim views")
	}
	return out, nil
}
