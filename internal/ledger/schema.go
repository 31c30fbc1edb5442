package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Schema names as registered with the indexer. The indexer addresses a
// record table by the hash of its versioned name, not the name itself.
const (
	schemaInteraction = "tunelytics.interaction.v1"
	schemaPost        = "tunelytics.post.v1"
	schemaPlayEvent   = "tunelytics.play_event.v1"
)

// Positional field counts per schema:
// interaction: id, timestamp, type, targetId, targetType, fromUser, content, parentId, tipAmount
// play event:  id, timestamp, tokenId, listener, duration, source
// post:        id, timestamp, content, quotedPostId, replyToId, author, isDeleted
const (
	InteractionFieldCount = 9
	PlayEventFieldCount   = 6
	PostFieldCount        = 7
)

// SchemaIDs holds the memoized schema identifiers. Computing them is cheap
// but they are process-wide constants, so they are derived once on first
// use and only reachable through the accessor below.
type SchemaIDs struct {
	Interaction string
	Post        string
	PlayEvent   string
}

var (
	schemaOnce sync.Once
	schemaIDs  SchemaIDs
)

// Schemas returns the schema identifiers for all record tables.
func Schemas() SchemaIDs {
	schemaOnce.Do(func() {
		schemaIDs = SchemaIDs{
			Interaction: schemaID(schemaInteraction),
			Post:        schemaID(schemaPost),
			PlayEvent:   schemaID(schemaPlayEvent),
		}
	})
	return schemaIDs
}

func schemaID(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])
}
