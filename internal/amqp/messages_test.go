package amqp

import (
	"testing"
	"time"
)

func TestPriceAlertMessageRoundtrip(t *testing.T) {
	date := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	msg := NewPriceAlertMessage("Leche", "Lidl", 1.30, 1.20, 8.33, date)

	if msg.Timestamp.IsZero() {
		t.Error("Timestamp not stamped")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := PriceAlertMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.Product != "Leche" || decoded.Store != "Lidl" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.CurrentPrice != 1.30 || decoded.PreviousPrice != 1.20 || decoded.PercentChange != 8.33 {
		t.Errorf("prices = %+v", decoded)
	}
	if !decoded.Date.Equal(date) {
		t.Errorf("Date = %v", decoded.Date)
	}
}

func TestPriceAlertMessageFromJSONMalformed(t *testing.T) {
	if _, err := PriceAlertMessageFromJSON([]byte(`{"product":`)); err == nil {
		t.Error("malformed JSON accepted")
	}
}
