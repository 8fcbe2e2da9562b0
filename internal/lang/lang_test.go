package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Lang
		wantErr bool
	}{
		{in: "en", want: "en"},
		{in: "EN", want: "en"},
		{in: " grc ", want: "grc"},
		{in: "en-GB", want: "en"},
		{in: "xx", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEdition_RejectsNonEditions(t *testing.T) {
	t.Parallel()

	_, err := ParseEdition("grc")
	require.ErrorIs(t, err, ErrUnsupported)

	e, err := ParseEdition("el")
	require.NoError(t, err)
	assert.Equal(t, Edition("el"), e)
}

func TestLong(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ancient Greek", Lang("grc").Long())
	assert.Equal(t, "Serbo-Croatian", Lang("sh").Long())
	assert.Equal(t, "zz", Lang("zz").Long())
}

func TestEditions_AreEditions(t *testing.T) {
	t.Parallel()

	eds := Editions()
	require.NotEmpty(t, eds)
	for _, e := range eds {
		assert.True(t, e.IsEdition(), "edition %s", e)
	}
	assert.Contains(t, eds, Edition("en"))
	assert.NotContains(t, eds, Edition("la"))
	assert.Greater(t, len(All()), len(eds))
}

func TestSpec(t *testing.T) {
	t.Parallel()

	all, err := ParseSpec("ALL")
	require.NoError(t, err)
	assert.True(t, all.IsAll())
	assert.Equal(t, "all", all.String())
	assert.Equal(t, []Lang{"a", "b"}, all.Variants([]Lang{"a", "b"}))

	one, err := ParseSpec("fr")
	require.NoError(t, err)
	assert.False(t, one.IsAll())
	assert.Equal(t, []Lang{"fr"}, one.Variants([]Lang{"a", "b"}))

	_, err = ParseEditionSpec("la")
	assert.ErrorIs(t, err, ErrUnsupported)
}
