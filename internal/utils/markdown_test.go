package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		contains   []string
		notContain []string
	}{
		{
			name:     "emphasis",
			in:       "**Water** weekly",
			contains: []string{"<strong>Water</strong>"},
		},
		{
			name:       "script stripped",
			in:         "hi <script>alert(1)</script>",
			notContain: []string{"<script"},
		},
		{
			name:       "raw html dropped",
			in:         `<img src="x" onerror="steal()">`,
			notContain: []string{"onerror", "steal()"},
		},
		{
			name:     "images load lazily",
			in:       "![fern](https://example.com/fern.png)",
			contains: []string{`loading="lazy"`, `alt="fern"`},
		},
		{
			name:     "external link hardened",
			in:       "[care guide](https://example.com/care)",
			contains: []string{`target="_blank"`, "noopener"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(RenderMarkdown(tt.in))
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
			for _, bad := range tt.notContain {
				if strings.Contains(out, bad) {
					t.Errorf("output %q should not contain %q", out, bad)
				}
			}
		})
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if out := RenderMarkdown(""); out != "" {
		t.Errorf("got %q", out)
	}
}
