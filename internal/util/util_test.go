package util

import (
	"context"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short string unchanged", in: "hello", limit: 10, want: "hello"},
		{name: "trimmed before measuring", in: "  hello  ", limit: 10, want: "hello"},
		{name: "truncated with ellipsis", in: "abcdefghij", limit: 4, want: "abcd..."},
		{name: "zero limit", in: "abc", limit: 0, want: ""},
		{name: "multibyte runes", in: "ラッセル歩行器", limit: 3, want: "ラッセ..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateForLog(tc.in, tc.limit); got != tc.want {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestWaitForCancelled(t *testing.T) {
	originalSleep := sleep
	sleep = func(time.Duration) { select {} }
	defer func() { sleep = originalSleep }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); err == nil {
		t.Fatal("expected context error")
	}
}

func TestWaitForZeroDuration(t *testing.T) {
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
