package identity

import (
	"encoding/json"
	"time"

	"parkingbot/internal/pkg/errs"
)

const (
	// KeyPrefix carries a schema version; bumping it orphans every cached record.
	KeyPrefix = "slack_user_names:2:"
	CacheTTL  = 30 * 24 * time.Hour

	SentinelName = "Sean Connery"
)

// Record is the cached set of names for one directory user. The JSON shape
// matches entries written by earlier deployments and must not change without
// bumping KeyPrefix.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RealName  string `json:"real_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// NewSentinel is used whenever the directory cannot name userID.
func NewSentinel(userID string) *Record {
	return &Record{ID: userID, Name: SentinelName}
}

func (r *Record) IsSentinel() bool {
	return r.Name == SentinelName && r.RealName == "" && r.FirstName == ""
}

func (r *Record) DisplayName() string {
	if r.FirstName != "" {
		return r.FirstName
	}
	return r.Name
}

func (r *Record) FullName() string {
	if r.RealName != "" {
		return r.RealName
	}
	return r.Name
}

func (r *Record) SelectName(preferFullName bool) string {
	if preferFullName {
		return r.FullName()
	}
	return r.DisplayName()
}

func Key(userID string) string {
	return KeyPrefix + userID
}

func (r *Record) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Decode(raw string) (*Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode identity record"), errs.ErrCorruptRecord)
	}
	if r.Name == "" && r.FirstName == "" && r.RealName == "" {
		return nil, errs.Mark(errs.New("identity record has no usable name"), errs.ErrCorruptRecord)
	}
	return &r, nil
}
