package tags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tt := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "latin",
			text: "The sunset today was breathtaking. #Nature #Sunset",
			want: []string{"#Nature", "#Sunset"},
		},
		{
			name: "arabic_with_underscore",
			text: "هدوء الليل #صباح_الخير #قهوة",
			want: []string{"#صباح_الخير", "#قهوة"},
		},
		{
			name: "duplicates_and_digits",
			text: "#go1 and #go1 again, #2024!",
			want: []string{"#go1", "#2024"},
		},
		{
			name: "bare_hash",
			text: "# not a tag",
			want: nil,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Extract(tc.text))
		})
	}
}

func TestTrending(t *testing.T) {
	lists := [][]string{
		{"#a", "#b"},
		{"#a", "#c"},
		{"#a", "#b"},
		{"#a", "#c"},
		{"#a", "#b", "#c"},
	}

	require.Equal(t, []string{"#a", "#b"}, Trending(lists, 2))
	require.Equal(t, []string{"#a", "#b", "#c"}, Trending(lists, 10))
}

func TestTrending_CaseSensitiveAndTrimmed(t *testing.T) {
	lists := [][]string{
		{"#Go", " #go ", "#go"},
		{"", "  "},
	}

	require.Equal(t, []string{"#go", "#Go"}, Trending(lists, 5))
}

func TestTrending_Empty(t *testing.T) {
	require.Equal(t, []string{}, Trending(nil, 3))
	require.Equal(t, []string{}, Trending([][]string{{"#a"}}, 0))
}
