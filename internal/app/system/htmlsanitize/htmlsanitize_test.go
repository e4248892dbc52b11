package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/brewlab/internal/app/system/htmlsanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain notes", "plain notes"},
		{"<script>alert(1)</script>slightly sour", "slightly sour"},
		{"  <b>ropey</b> flow ", "ropey flow"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := htmlsanitize.Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
