package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWelcomeEmail(t *testing.T) {
	msg, err := BuildWelcomeEmail("Ayesha Khan", "ayesha@example.com", "p4ssw0rd12")
	require.NoError(t, err)

	assert.Equal(t, "Your library account is ready", msg.Subject)
	assert.Contains(t, msg.TextBody, "ayesha@example.com")
	assert.Contains(t, msg.TextBody, "p4ssw0rd12")
	assert.Contains(t, msg.HTMLBody, "ayesha@example.com")
	assert.Contains(t, msg.HTMLBody, "Ayesha Khan")
}

func TestBuildClearanceApprovedEmail(t *testing.T) {
	msg, err := BuildClearanceApprovedEmail("Bilal Ahmed", "req-123")
	require.NoError(t, err)

	assert.Equal(t, "Your clearance request has been approved", msg.Subject)
	assert.Contains(t, msg.TextBody, "req-123")
	assert.Contains(t, msg.HTMLBody, "Bilal Ahmed")
}

func TestBuildClearanceRejectedEmailCarriesReason(t *testing.T) {
	msg, err := BuildClearanceRejectedEmail("Bilal Ahmed", "req-123", "Two books still checked out")
	require.NoError(t, err)

	assert.Equal(t, "Your clearance request has been rejected", msg.Subject)
	assert.Contains(t, msg.TextBody, "Two books still checked out")
	assert.Contains(t, msg.HTMLBody, "Two books still checked out")
	assert.Contains(t, msg.TextBody, "req-123")
}
