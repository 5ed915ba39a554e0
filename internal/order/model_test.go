package order

import (
	"testing"
	"time"
)

func TestParseRecord(t *testing.T) {
	payload := []byte(`{
		"id": "7c9a5cb2-9f6a-4a1e-8f2a-0f0e9b1c2d3e",
		"name": "Asha",
		"items": ["Ugali + Nyama"],
		"ts": "2025-06-02T12:30:00.123456+03:00"
	}`)

	o, err := ParseRecord(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Name != "Asha" || len(o.Items) != 1 || o.Items[0] != "Ugali + Nyama" {
		t.Fatalf("wrong order: %+v", o)
	}
	if o.Timestamp.UTC().Hour() != 9 {
		t.Errorf("timezone lost in parsing: %v", o.Timestamp)
	}
}

func TestParseRecordRejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"missing id":        `{"name":"Asha","items":["Pilau"],"ts":"2025-06-02T12:00:00Z"}`,
		"missing name":      `{"id":"x","items":["Pilau"],"ts":"2025-06-02T12:00:00Z"}`,
		"empty items":       `{"id":"x","name":"Asha","items":[],"ts":"2025-06-02T12:00:00Z"}`,
		"items not a list":  `{"id":"x","name":"Asha","items":"Pilau","ts":"2025-06-02T12:00:00Z"}`,
		"bad timestamp":     `{"id":"x","name":"Asha","items":["Pilau"],"ts":"yesterday"}`,
		"not even json":     `{{{`,
	}

	for name, payload := range cases {
		if _, err := ParseRecord([]byte(payload)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestParseNotification(t *testing.T) {
	insert := `{"type":"INSERT","record":{"id":"x","name":"Asha","items":["Pilau"],"ts":"2025-06-02T12:00:00Z"}}`
	ev, err := parseNotification(insert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Type != EventInserted || ev.Order.Name != "Asha" || ev.ID != "x" {
		t.Fatalf("wrong event: %+v", ev)
	}

	del := `{"type":"DELETE","id":"x"}`
	ev, err = parseNotification(del)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Type != EventDeleted || ev.ID != "x" {
		t.Fatalf("wrong event: %+v", ev)
	}

	for _, bad := range []string{`{"type":"TRUNCATE"}`, `{"type":"DELETE"}`, `not json`} {
		if _, err := parseNotification(bad); err == nil {
			t.Errorf("payload %q: expected an error", bad)
		}
	}
}

func TestContainsPhrase(t *testing.T) {
	o := Order{Items: []string{"Ugali + Nyama", "Pilau"}}

	if !o.ContainsPhrase("ugali") {
		t.Errorf("case-insensitive match failed")
	}
	if !o.ContainsPhrase("Pilau") {
		t.Errorf("exact match failed")
	}
	if o.ContainsPhrase("Chips") {
		t.Errorf("matched an absent phrase")
	}
}

func TestOnDayUsesLocalMidnight(t *testing.T) {
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 23:30 UTC on June 1st is already June 2nd in Nairobi (UTC+3).
	o := Order{Timestamp: time.Date(2025, time.June, 1, 23, 30, 0, 0, time.UTC)}
	ref := time.Date(2025, time.June, 2, 8, 0, 0, 0, nairobi)

	if !o.OnDay(ref, nairobi) {
		t.Errorf("late UTC order should count as today in Nairobi")
	}
	if o.OnDay(ref, time.UTC) {
		t.Errorf("same instant should be yesterday in UTC")
	}
}
