package llm

import (
	"strings"
	"testing"
)

func TestDecodeLLMJSON(t *testing.T) {
	cases := map[string]string{
		"plain":       `{"name":"deck"}`,
		"fenced":      "```json\n{\"name\":\"deck\"}\n```",
		"bare fence":  "```\n{\"name\":\"deck\"}\n```",
		"with prose":  "Here is the result: {\"name\":\"deck\"} hope it helps",
		"padded":      "\n\n  {\"name\":\"deck\"}  \n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			var out struct {
				Name string `json:"name"`
			}
			if err := DecodeLLMJSON(input, &out); err != nil {
				t.Fatalf("DecodeLLMJSON: %v", err)
			}
			if out.Name != "deck" {
				t.Fatalf("expected deck, got %q", out.Name)
			}
		})
	}
}

func TestDecodeLLMJSONArray(t *testing.T) {
	var out []string
	if err := DecodeLLMJSON("notes:\n[\"a\", \"b\"]", &out); err != nil {
		t.Fatalf("DecodeLLMJSON: %v", err)
	}
	if len(out) != 2 || out[1] != "b" {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestDecodeLLMJSONFailures(t *testing.T) {
	var out map[string]any
	if err := DecodeLLMJSON("   ", &out); err == nil {
		t.Fatal("expected empty payload to fail")
	}
	err := DecodeLLMJSON("no json here at all", &out)
	if err == nil {
		t.Fatal("expected prose to fail")
	}
	if !strings.Contains(err.Error(), "snippet") {
		t.Fatalf("expected snippet in error, got %v", err)
	}
}

func TestSummarizePayloadTruncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := SummarizePayload(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation suffix, got %q", got)
	}
	if SummarizePayload("  ") != "<empty>" {
		t.Fatal("expected <empty> marker")
	}
}
