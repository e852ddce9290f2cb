package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModificationsOmitBlankValues(t *testing.T) {
	mods := Modifications(
		[2]string{"property_headline", "Sea View Loft"},
		[2]string{"property_price", ""},
		[2]string{"agent_name", "   "},
		[2]string{"property_address", "12 Harbour Rd"},
	)

	require.Len(t, mods, 2)
	assert.Equal(t, "property_headline", mods[0].Field)
	assert.Equal(t, "property_address", mods[1].Field)
}

func TestValidateModifications(t *testing.T) {
	require.Error(t, ValidateModifications(nil))
	require.Error(t, ValidateModifications([]Modification{{Field: " ", Value: "x"}}))
	require.NoError(t, ValidateModifications([]Modification{{Field: "advice_heading", Value: "Test"}}))
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusTimedOut.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusSubmitted.Terminal())
}
