package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hokkyo/pdfsearch/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Query: "apple",
		Results: []models.ScoredResult{
			{Path: "one.pdf", Score: 1.0},
			{Path: "two.pdf", Score: 0.0},
		},
		Total: 2,
	}
}

func TestWriteResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	want := "1: one.pdf, 1\n2: two.pdf, 0\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteResults_json(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != "apple" || len(decoded.Results) != 2 {
		t.Errorf("unexpected response: %+v", decoded)
	}
	if decoded.Results[0].Path != "one.pdf" {
		t.Errorf("results[0] = %+v", decoded.Results[0])
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, "1"},
		{0.0, "0"},
		{1.5, "1.5"},
		{0.5, "0.5"},
		{1.0 + 1.0/3.0, "1.3333333333333333"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.score); got != tt.want {
			t.Errorf("FormatScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	if _, err := ParseOutputFormat("text"); err != nil {
		t.Errorf("text: %v", err)
	}
	if _, err := ParseOutputFormat("json"); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := ParseOutputFormat("yaml"); err == nil {
		t.Error("want error for unknown format")
	}
}
