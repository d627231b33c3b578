package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebSearchToolInvokableRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "golang泛型" {
			t.Errorf("unexpected query %s", r.URL.Query().Get("q"))
		}
		json.NewEncoder(w).Encode(searchResponse{Results: []SearchResult{
			{Title: "Go泛型教程", Url: "https://example.com/1", Content: "泛型入门"},
			{Title: "type parameters", Url: "https://example.com/2", Content: "proposal"},
			{Title: "第三条", Url: "https://example.com/3", Content: "多余的结果"},
		}})
	}))
	defer server.Close()

	searchTool := NewWebSearchTool(&WebSearchConfig{BaseUrl: server.URL, Limit: 2})
	params := map[string]string{"query": "golang泛型"}
	marshal, _ := json.Marshal(params)
	invokableRun, err := searchTool.InvokableRun(context.Background(), string(marshal))
	if err != nil {
		t.Fatalf("InvokableRun() error = %v", err)
	}
	var results []SearchResult
	if err := json.Unmarshal([]byte(invokableRun), &results); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(results))
	}
	if results[0].Title != "Go泛型教程" {
		t.Errorf("results[0].Title = %s", results[0].Title)
	}
}

func TestWebSearchToolMissingQuery(t *testing.T) {
	searchTool := NewWebSearchTool(&WebSearchConfig{BaseUrl: "http://localhost:0"})
	if _, err := searchTool.InvokableRun(context.Background(), `{}`); err == nil {
		t.Errorf("expected error for missing query")
	}
}
