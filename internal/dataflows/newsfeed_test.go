package dataflows

import (
	"testing"
)

func TestNormalizeFeedPayloadNewsObject(t *testing.T) {
	body := []byte(`{"news": [
		{"title": "Earnings beat expectations", "publisher": "Reuters", "link": "https://example.com/a", "providerPublishTime": 1712000000},
		{"title": "Guidance raised", "publisher": "Bloomberg", "link": "https://example.com/b", "providerPublishTime": 1712100000}
	]}`)

	items := normalizeFeedPayload(body, "MSFT")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Earnings beat expectations" {
		t.Fatalf("unexpected title: %s", items[0].Title)
	}
	if items[0].Summary != items[0].Title {
		t.Fatal("expected title to back-fill missing summary")
	}
	if items[0].PublishedAt.IsZero() {
		t.Fatal("expected publish time to be set")
	}
}

func TestNormalizeFeedPayloadKeyedBySymbol(t *testing.T) {
	body := []byte(`{"msft": [
		{"title": "Analyst upgrade", "publisher": "Barron's", "link": "https://example.com/c"}
	]}`)

	items := normalizeFeedPayload(body, "MSFT")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].PublishedAt.IsZero() {
		t.Fatal("expected zero publish time when feed omits it")
	}
}

func TestNormalizeFeedPayloadBareSequence(t *testing.T) {
	body := []byte(`[
		{"title": "Merger announced", "publisher": "WSJ", "link": "https://example.com/d"}
	]`)

	items := normalizeFeedPayload(body, "MSFT")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestNormalizeFeedPayloadUnrecognized(t *testing.T) {
	for _, body := range []string{`{}`, `{"quotes": []}`, `null`, `not json`, `{"news": "oops"}`} {
		items := normalizeFeedPayload([]byte(body), "MSFT")
		if items == nil {
			t.Fatalf("expected empty slice for %q, got nil", body)
		}
		if len(items) != 0 {
			t.Fatalf("expected no items for %q, got %d", body, len(items))
		}
	}
}

func TestNormalizeFeedPayloadSkipsUntitled(t *testing.T) {
	body := []byte(`{"news": [
		{"title": "  ", "publisher": "Reuters"},
		{"title": "Real story", "publisher": "Reuters"}
	]}`)

	items := normalizeFeedPayload(body, "MSFT")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Real story" {
		t.Fatalf("unexpected title: %s", items[0].Title)
	}
}
