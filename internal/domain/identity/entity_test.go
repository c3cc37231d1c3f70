//go:build unit

package identity_test

import (
	"testing"

	"parkingbot/internal/domain/identity"
	"parkingbot/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	t.Run("name selection", func(t *testing.T) {
		full := &identity.Record{ID: "U1", Name: "mjones", RealName: "Mike Jones", FirstName: "Mike"}
		assert.Equal(t, "Mike", full.SelectName(false))
		assert.Equal(t, "Mike Jones", full.SelectName(true))

		bare := &identity.Record{ID: "U1", Name: "mjones", FirstName: "Mike"}
		assert.Equal(t, "Mike", bare.DisplayName())
		assert.Equal(t, "mjones", bare.FullName())

		nameOnly := &identity.Record{ID: "U2", Name: "bob"}
		assert.Equal(t, "bob", nameOnly.SelectName(false))
		assert.Equal(t, "bob", nameOnly.SelectName(true))
	})

	t.Run("sentinel", func(t *testing.T) {
		r := identity.NewSentinel("U9")
		assert.True(t, r.IsSentinel())
		assert.Equal(t, "Sean Connery", r.SelectName(false))
		assert.Equal(t, "Sean Connery", r.SelectName(true))
		assert.Equal(t, "slack_user_names:2:U9", identity.Key("U9"))
	})

	t.Run("compatible with stored format", func(t *testing.T) {
		raw := `{"id":"U1","name":"mjones","first_name":"Mike","last_name":"Jones"}`
		r, err := identity.Decode(raw)
		require.NoError(t, err)

		want := &identity.Record{ID: "U1", Name: "mjones", FirstName: "Mike", LastName: "Jones"}
		if diff := cmp.Diff(want, r); diff != "" {
			t.Errorf("Record mismatch (-want +got):\n%s", diff)
		}

		encoded, err := r.Encode()
		require.NoError(t, err)
		assert.JSONEq(t, raw, encoded)
	})

	t.Run("corrupt data rejected", func(t *testing.T) {
		for _, raw := range []string{"", "not json", `{"id":"U1"}`} {
			_, err := identity.Decode(raw)
			assert.True(t, errs.Is(err, errs.ErrCorruptRecord), raw)
		}
	})
}
