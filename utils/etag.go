package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag derives a validator from a document ID, its last update time
// and any derived state the response embeds (registration counts, caller
// identity). Derived values change without touching updated_at, so they must
// feed the validator or conditional reads would serve stale enrichment.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time, derived ...string) string {
	payload := fmt.Sprintf("%s-%d", id.Hex(), updatedAt.UnixNano())
	if len(derived) > 0 {
		payload += "-" + strings.Join(derived, "-")
	}
	sum := md5.Sum([]byte(payload))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
