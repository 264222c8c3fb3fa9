package gmailclient

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage_IncludesBodyAndAttachments(t *testing.T) {
	raw, err := buildMessage(
		"scheduler@example.com",
		"team@example.com",
		"Schedule published",
		"Run 1 completed.",
		[]Attachment{
			{Filename: "filled_shifts.csv", Content: []byte("location,date\nlab,2026-01-05\n")},
		},
	)
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	msg := string(decoded)

	assert.Contains(t, msg, "From: scheduler@example.com")
	assert.Contains(t, msg, "To: team@example.com")
	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, "Run 1 completed.")
	assert.Contains(t, msg, `filename="filled_shifts.csv"`)

	encodedAttachment := base64.StdEncoding.EncodeToString([]byte("location,date\nlab,2026-01-05\n"))
	assert.True(t, strings.Contains(msg, encodedAttachment))
}

func TestBuildMessage_NoAttachments(t *testing.T) {
	raw, err := buildMessage("a@example.com", "b@example.com", "Subject", "Body", nil)
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "Body")
}
