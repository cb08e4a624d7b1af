package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindEvent(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{"recorded", `{"data":[{"id":1,"attributes":{"eventId":"evt_1"}}]}`, true},
		{"unknown", `{"data":[]}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotFilter string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotFilter = r.URL.Query().Get("filters[eventId][$eq]")
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, 0)
			found, err := client.FindEvent(context.Background(), "evt_1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotFilter != "evt_1" {
				t.Fatalf("expected event id filter, got %q", gotFilter)
			}
			if found != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, found)
			}
		})
	}
}

func TestCreateEventRecordsPayload(t *testing.T) {
	var gotBody map[string]map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Write([]byte(`{"data":{"id":1,"attributes":{}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)
	if err := client.CreateEvent(context.Background(), "evt_1", []byte(`{"id":"evt_1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := gotBody["data"]
	if data["eventId"] != "evt_1" {
		t.Fatalf("expected eventId evt_1, got %v", data["eventId"])
	}
	if data["payload"] != `{"id":"evt_1"}` {
		t.Fatalf("expected raw payload stored, got %v", data["payload"])
	}
	if data["processedAt"] == "" || data["processedAt"] == nil {
		t.Fatal("expected processedAt timestamp")
	}
}
