package systems

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata"
)

const identityKey = "identity"

// Identity is stored on disk so a client keeps its session id across runs.
type Identity struct {
	SessionID  string `json:"sessionId"`
	PlayerName string `json:"playerName"`
}

// ItemStore is the subset of *gdata.Manager used for persistence.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}
	return m, nil
}

// LoadIdentity returns the stored identity, creating and saving a fresh one
// when none exists. A non-empty playerName replaces the stored name.
func LoadIdentity(store ItemStore, playerName string) (Identity, error) {
	var id Identity

	data, err := store.LoadItem(identityKey)
	if err != nil {
		return Identity{}, fmt.Errorf("load identity: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &id); err != nil {
			return Identity{}, fmt.Errorf("parse identity: %w", err)
		}
	}

	changed := false
	if id.SessionID == "" {
		id.SessionID = uuid.NewString()
		changed = true
	}
	if playerName != "" && playerName != id.PlayerName {
		id.PlayerName = playerName
		changed = true
	}
	if !changed {
		return id, nil
	}

	data, err = json.Marshal(id)
	if err != nil {
		return Identity{}, fmt.Errorf("encode identity: %w", err)
	}
	if err := store.SaveItem(identityKey, data); err != nil {
		return Identity{}, fmt.Errorf("save identity: %w", err)
	}
	return id, nil
}
