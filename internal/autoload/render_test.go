package autoload

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		format Format
	}{
		{"static manifest", staticManifest, StaticFormat},
		{"files manifest", filesManifest, FilesFormat},
		{"crlf manifest", strings.ReplaceAll(filesManifest, "\n", "\r\n"), FilesFormat},
		{"tabs and trailing blanks", "return array(\n\t'k1'\t=>\t'a.php' , \n\t'k2' => 'b.php',\t\n);", FilesFormat},
		{"empty block", "return array(\n);\n", FilesFormat},
		{"block on one line", "return array();\n", FilesFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.text, tt.format)
			require.NoError(t, err)

			body := Render(b, b.Entries)
			assert.Equal(t, tt.text[b.Start:b.End], body)
			if diff := cmp.Diff(tt.text, Splice(tt.text, b, body)); diff != "" {
				t.Errorf("Splice() mismatch (-want +got):\n%s", diff)
			}

			again, err := Parse(Splice(tt.text, b, body), tt.format)
			require.NoError(t, err)
			assert.Equal(t, body, Render(again, again.Entries))
		})
	}
}

func TestRender_HandBuiltEntriesUseBlockShape(t *testing.T) {
	b, err := Parse(filesManifest, FilesFormat)
	require.NoError(t, err)

	body := Render(b, EntryList{{Key: "abc", Value: "$baseDir . '/x.php'"}})

	assert.Equal(t, "\n    'abc' => $baseDir . '/x.php',\n", body)
}

func TestRender_HandBuiltEntriesInEmptyBlock(t *testing.T) {
	b, err := Parse("return array(\r\n);\r\n", FilesFormat)
	require.NoError(t, err)

	body := Render(b, EntryList{{Key: "abc", Value: "'x.php'"}})

	assert.Equal(t, "\r\n        'abc' => 'x.php',\r\n", body)
}

func TestSplice_KeepsSurroundingText(t *testing.T) {
	b, err := Parse(staticManifest, StaticFormat)
	require.NoError(t, err)

	promoted := Reorder(b.Entries, PromotionSet{"/acme/helpers/src/helpers.php"})
	out := Splice(staticManifest, b, Render(b, promoted))

	assert.Equal(t, len(staticManifest), len(out))
	assert.Equal(t, staticManifest[:b.Start], out[:b.Start])
	assert.Equal(t, staticManifest[b.End:], out[b.End:])

	idxHelpers := strings.Index(out, "/acme/helpers/src/helpers.php")
	idxMbstring := strings.Index(out, "/symfony/polyfill-mbstring/bootstrap.php")
	assert.Less(t, idxHelpers, idxMbstring)
}

func TestPromote(t *testing.T) {
	t.Run("moves helpers to the front", func(t *testing.T) {
		out, err := Promote(staticManifest, StaticFormat, PromotionSet{"/src/functions.php", "/acme/helpers/"})
		require.NoError(t, err)

		assert.True(t, out.Changed)
		assert.Equal(t, []string{
			"9c7a2f4e6b3d1a0f8e5c2b7d4a1f0e3c",
			"f2a8c5e1b0c14a9d8d1c1d3f6a2b7e90",
			"0e6d7bf4a5811bfa5cf40c5ccd6fae6a",
			"a4a119a56e50fbb293281d9a48007e0e",
		}, out.After.Keys())
		assert.Len(t, out.Moves, 4)

		again, err := Promote(out.Text, StaticFormat, PromotionSet{"/src/functions.php", "/acme/helpers/"})
		require.NoError(t, err)
		assert.False(t, again.Changed)
		assert.Empty(t, again.Moves)
		assert.Equal(t, out.Text, again.Text)
	})

	t.Run("unchanged text when nothing matches", func(t *testing.T) {
		out, err := Promote(filesManifest, FilesFormat, PromotionSet{"Missing.php"})
		require.NoError(t, err)

		assert.False(t, out.Changed)
		assert.Equal(t, filesManifest, out.Text)
	})

	t.Run("format error is returned", func(t *testing.T) {
		out, err := Promote(filesManifest, StaticFormat, PromotionSet{"x"})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, ErrFormat)
	})
}
