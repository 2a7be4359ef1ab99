package model

import "testing"

func TestTemplate_LinkTarget(t *testing.T) {
	tests := []struct {
		name string
		tmpl Template
		want string
	}{
		{
			name: "destination path",
			tmpl: Template{DistPathRel: "/docs/usage.md"},
			want: "/docs/usage.md",
		},
		{
			name: "explicit link wins",
			tmpl: Template{DistPathRel: "/docs/usage.md", Menu: MenuInfo{Link: "https://example.com"}},
			want: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tmpl.LinkTarget(); got != tt.want {
				t.Errorf("LinkTarget() = %q, want %q", got, tt.want)
			}
		})
	}
}
