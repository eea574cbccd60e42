package tool

import (
	"strings"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// payout id namespace, fixed so ids are stable across deployments
var payoutNamespace = uuid.MustParse("6f2f41d3-7c96-4f3a-9a57-0f6b1d2c8a11")

// DeterministicUUID derives a stable UUIDv5 from the given parts. Used as the
// CreatorPayout primary key so re-running settlement for the same
// (creator, period) resolves to the same row instead of creating a second one.
func DeterministicUUID(parts ...string) string {
	return uuid.NewSHA1(payoutNamespace, []byte(strings.Join(parts, "|"))).String()
}
