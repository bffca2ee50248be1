package amqp

import (
	"encoding/json"
	"time"
)

// PriceAlertMessage carries one detected price increase to downstream
// consumers (notifications, audit log).
type PriceAlertMessage struct {
	Product       string    `json:"product"`
	Store         string    `json:"store"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousPrice float64   `json:"previous_price"`
	PercentChange float64   `json:"percent_change"`
	Date          time.Time `json:"date"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewPriceAlertMessage builds a message stamped with the current time.
func NewPriceAlertMessage(product, store string, current, previous, percentChange float64, date time.Time) *PriceAlertMessage {
	return &PriceAlertMessage{
		Product:       product,
		Store:         store,
		CurrentPrice:  current,
		PreviousPrice: previous,
		PercentChange: percentChange,
		Date:          date,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *PriceAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PriceAlertMessageFromJSON creates a message from JSON bytes.
func PriceAlertMessageFromJSON(data []byte) (*PriceAlertMessage, error) {
	var msg PriceAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
