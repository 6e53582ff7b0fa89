package httpapi

import (
	"bufio"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"mikopo.org/internal/notify"
)

func TestStreamDeliversNotices(t *testing.T) {
	c := newTestAPI(t, nil)
	token := c.login("12345", "Test@1234").Token

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/notices/stream", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)

	// The opening comment confirms the subscription is registered before
	// anything is published.
	first, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read opening line: %v", err)
	}
	if !strings.HasPrefix(first, ":") {
		t.Fatalf("unexpected opening line: %q", first)
	}

	sent := c.notices.Publish(notify.KindSyncFailed, "remote sync failed")

	var payload string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			payload = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			break
		}
	}

	var got notify.Notice
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("decode notice: %v", err)
	}
	if got.ID != sent.ID || got.Kind != notify.KindSyncFailed {
		t.Fatalf("unexpected notice: %+v", got)
	}
}

func TestStreamRequiresAuth(t *testing.T) {
	c := newTestAPI(t, nil)
	resp := c.get("/v1/notices/stream", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
