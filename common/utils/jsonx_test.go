package utils

import "testing"

func TestExtractLooseJSONDirect(t *testing.T) {
	v, ok := ExtractLooseJSON(`{"selected_knowledge_bases":[{"id":"k1","name":"运维手册"}]}`)
	if !ok {
		t.Fatalf("extract failed")
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", v)
	}
	list, ok := m["selected_knowledge_bases"].([]any)
	if !ok || len(list) != 1 {
		t.Errorf("unexpected list: %v", m["selected_knowledge_bases"])
	}
}

func TestExtractLooseJSONFenced(t *testing.T) {
	content := "```json\n{\"id\": \"k2\", \"name\": \"产品文档\"}\n```"
	v, ok := ExtractLooseJSON(content)
	if !ok {
		t.Fatalf("extract failed")
	}
	m := v.(map[string]any)
	if m["id"] != "k2" {
		t.Errorf("id = %v", m["id"])
	}
}

func TestExtractLooseJSONSingleQuotes(t *testing.T) {
	v, ok := ExtractLooseJSON(`{'id': 'k3', 'name': 'faq'}`)
	if !ok {
		t.Fatalf("extract failed")
	}
	m := v.(map[string]any)
	if m["name"] != "faq" {
		t.Errorf("name = %v", m["name"])
	}
}

func TestExtractLooseJSONBareKeys(t *testing.T) {
	v, ok := ExtractLooseJSON(`{id: "k4", name: "wiki"}`)
	if !ok {
		t.Fatalf("extract failed")
	}
	m := v.(map[string]any)
	if m["id"] != "k4" {
		t.Errorf("id = %v", m["id"])
	}
}

func TestExtractLooseJSONEmbeddedInProse(t *testing.T) {
	content := `根据用户问题, 我选择如下知识库: {"selected_knowledge_bases": [{"id": "k5", "name": "设计规范"}]} 希望有帮助`
	v, ok := ExtractLooseJSON(content)
	if !ok {
		t.Fatalf("extract failed")
	}
	m := v.(map[string]any)
	if _, exists := m["selected_knowledge_bases"]; !exists {
		t.Errorf("missing key: %v", m)
	}
}

func TestExtractLooseJSONNested(t *testing.T) {
	content := `answer: {"selected_knowledge_bases": [{"id": "a"}, {"id": "b"}]}`
	v, ok := ExtractLooseJSON(content)
	if !ok {
		t.Fatalf("extract failed")
	}
	m := v.(map[string]any)
	list := m["selected_knowledge_bases"].([]any)
	if len(list) != 2 {
		t.Errorf("len = %d", len(list))
	}
}

func TestExtractLooseJSONNone(t *testing.T) {
	for _, content := range []string{"None", "", "没有匹配的知识库", "I could not find anything relevant."} {
		if v, ok := ExtractLooseJSON(content); ok {
			t.Errorf("content %q: expected failure, got %v", content, v)
		}
	}
}

func TestExtractLooseBool(t *testing.T) {
	cases := []struct {
		content string
		want    bool
	}{
		{`{"web_search": true}`, true},
		{`{"web_search": "yes"}`, true},
		{`{'web_search': 'no'}`, false},
		{"```json\n{\"web_search\": false}\n```", false},
		{"true", true},
		{"Yes", true},
		{"no", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ExtractLooseBool(c.content); got != c.want {
			t.Errorf("ExtractLooseBool(%q) = %v, want %v", c.content, got, c.want)
		}
	}
}
