package amqp

import (
	"encoding/json"
	"time"
)

// AlertMessage is one advisory produced by the ledger engine, published so
// external consumers (the alert worker) can surface it out of band.
type AlertMessage struct {
	Login     string    `json:"login"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewAlertMessage(login, message string) *AlertMessage {
	return &AlertMessage{
		Login:     login,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
