package reconcile

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
)

// NewItem fingerprints body. A document that does not decode keeps an empty
// version; its checksum still exposes the difference.
func NewItem(name string, body []byte) Item {
	sum := sha256.Sum256(body)
	item := Item{Name: name, Checksum: hex.EncodeToString(sum[:]), Body: body}
	if doc, err := catalog.Decode(name, body); err == nil {
		item.Version = doc.Version
	}
	return item
}
