package gemini

import (
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestIsTemporary(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", genai.APIError{Code: http.StatusInternalServerError}, true},
		{"rate limit", genai.APIError{Code: http.StatusTooManyRequests}, true},
		{"bad request", genai.APIError{Code: http.StatusBadRequest}, false},
		{"unauthorized", genai.APIError{Code: http.StatusUnauthorized}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isTemporary(tc.err); got != tc.want {
				t.Fatalf("isTemporary(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestCollectTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: " first "},
				{Text: ""},
				{Text: "second"},
			}}},
			nil,
		},
	}

	if got := collectText(resp); got != "first\nsecond" {
		t.Fatalf("unexpected output: %q", got)
	}
}
