package amqp

import (
	"encoding/json"
	"time"
)

// LedgerSyncMessage asks the worker to export one ledger transaction.
// It carries only the id and owner; the worker fetches the full row from
// the database so the queue never holds stale amounts.
type LedgerSyncMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerSyncMessage(id, userID string) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
