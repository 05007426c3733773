package util

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		minLen int
		want   []string
	}{
		{name: "basic", text: "Reels, Stories & Feed!", minLen: 0, want: []string{"reels", "stories", "feed"}},
		{name: "min length", text: "a bb ccc dddd", minLen: 3, want: []string{"ccc", "dddd"}},
		{name: "digits kept", text: "q3 2025 report", minLen: 2, want: []string{"q3", "2025", "report"}},
		{name: "empty", text: "  ...  ", minLen: 1, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, tt.minLen)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "under limit", text: "short", max: 10, want: "short"},
		{name: "exactly at limit", text: "12345", max: 5, want: "12345"},
		{name: "truncated", text: "hello world", max: 5, want: "hello..."},
		{name: "trailing space trimmed", text: "hello world", max: 6, want: "hello..."},
		{name: "multibyte", text: "日本語のテキスト", max: 3, want: "日本語..."},
		{name: "zero max", text: "anything", max: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.text, tt.max); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("BuzzLab runs Instagram accounts", "INSTAGRAM") {
		t.Errorf("expected case-insensitive match")
	}
	if ContainsFold("short clip", "tiktok") {
		t.Errorf("expected no match")
	}
}
