package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateInvitationToken returns a random single-use token for invitation
// links. Dashes are stripped so the token survives copy/paste from email
// clients that break on them.
func GenerateInvitationToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
