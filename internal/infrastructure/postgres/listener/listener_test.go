package listener

import (
	"testing"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotification_Update(t *testing.T) {
	payload := `{"eventType":"UPDATE","schema":"public","table":"orders",
		"new":{"id":"o-1","order_status":"confirmed"},"old":{"id":"o-1","order_status":"pending"}}`

	change, err := ParseNotification(payload)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeUpdate, change.Type)
	assert.Equal(t, "orders", change.Table)
	assert.JSONEq(t, `{"id":"o-1","order_status":"confirmed"}`, string(change.New))
	assert.False(t, change.OccurredAt.IsZero())
}

func TestParseNotification_InsertHasNoOld(t *testing.T) {
	change, err := ParseNotification(`{"eventType":"INSERT","schema":"public","table":"orders","new":{"id":"o-2"},"old":null}`)
	require.NoError(t, err)
	assert.Nil(t, change.Old)
}

func TestParseNotification_Rejects(t *testing.T) {
	_, err := ParseNotification(`{"eventType":"TRUNCATE"}`)
	assert.Error(t, err)

	_, err = ParseNotification(`not json`)
	assert.Error(t, err)
}
