package template

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		ctx     *Context
		want    string
		wantErr bool
	}{
		{
			name: "entity substitution",
			tmpl: "What is the best {{.Entity}} available right now?",
			ctx:  &Context{Entity: "cloud backup"},
			want: "What is the best cloud backup available right now?",
		},
		{
			name: "category substitution",
			tmpl: "Recommend a {{.Category}} company like {{.Entity}}.",
			ctx:  &Context{Entity: "Acme", Category: "E-commerce"},
			want: "Recommend a E-commerce company like Acme.",
		},
		{
			name: "no delimiters passes through",
			tmpl: "Plain prompt with no substitutions.",
			ctx:  &Context{},
			want: "Plain prompt with no substitutions.",
		},
		{
			name:    "unknown field",
			tmpl:    "Tell me about {{.Brand}}.",
			ctx:     &Context{Entity: "Acme"},
			wantErr: true,
		},
		{
			name:    "malformed template",
			tmpl:    "Tell me about {{.Entity",
			ctx:     &Context{Entity: "Acme"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.ctx)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check("What is the best {{.Entity}}?"))
	require.NoError(t, Check("No delimiters at all"))
	require.Error(t, Check("Broken {{.Entity"))
}
