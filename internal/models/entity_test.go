package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    EntityType
		wantErr bool
	}{
		{name: "brand", input: "brand", want: EntityBrand},
		{name: "uppercase", input: "PRODUCT", want: EntityProduct},
		{name: "whitespace", input: "  service ", want: EntityService},
		{name: "feature", input: "feature", want: EntityFeature},
		{name: "unknown", input: "widget", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntityType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEntityTypePromptable(t *testing.T) {
	require.True(t, EntityBrand.Promptable())
	require.True(t, EntityProduct.Promptable())
	require.True(t, EntityService.Promptable())

	require.False(t, EntityFeature.Promptable())
	require.False(t, EntityLocation.Promptable())
	require.False(t, EntityPrice.Promptable())
}

func TestEntityNormalized(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "simple", value: "Acme", want: "acme"},
		{name: "trimmed", value: "  Acme Cloud  ", want: "acme cloud"},
		{name: "collapsed whitespace", value: "Acme\t\t Cloud\nStorage", want: "acme cloud storage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entity{Type: EntityBrand, Value: tt.value}
			require.Equal(t, tt.want, e.Normalized())
		})
	}
}

func TestEntityValidate(t *testing.T) {
	require.NoError(t, Entity{Type: EntityBrand, Value: "Acme"}.Validate())

	err := Entity{Type: "widget", Value: "Acme"}.Validate()
	require.ErrorContains(t, err, "invalid entity type")

	err = Entity{Type: EntityBrand, Value: "   "}.Validate()
	require.ErrorContains(t, err, "must not be empty")
}

func TestDedupeEntities(t *testing.T) {
	in := []Entity{
		{Type: EntityBrand, Value: "Acme"},
		{Type: EntityBrand, Value: "ACME "},          // duplicate after normalization
		{Type: EntityProduct, Value: "Acme"},         // same value, different type
		{Type: EntityProduct, Value: "cloud backup"},
		{Type: EntityProduct, Value: "Cloud  Backup"}, // duplicate after normalization
	}

	got := DedupeEntities(in)
	require.Equal(t, []Entity{
		{Type: EntityBrand, Value: "Acme"},
		{Type: EntityProduct, Value: "Acme"},
		{Type: EntityProduct, Value: "cloud backup"},
	}, got)
}

func TestDedupeEntities_PreservesOrder(t *testing.T) {
	in := []Entity{
		{Type: EntityService, Value: "hosting"},
		{Type: EntityBrand, Value: "Acme"},
		{Type: EntityService, Value: "Hosting"},
	}

	got := DedupeEntities(in)
	require.Len(t, got, 2)
	require.Equal(t, "hosting", got[0].Value)
	require.Equal(t, "Acme", got[1].Value)
}
