package sanitize

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(entropy []byte) *Generator {
	return &Generator{
		Now:     func() time.Time { return time.UnixMilli(1700000000123) },
		Entropy: bytes.NewReader(entropy),
	}
}

func TestGenerateLayout(t *testing.T) {
	g := fixedGenerator([]byte{0xde, 0xad, 0xbe, 0xef})

	name := g.Generate("photo.png")

	assert.Equal(t, "photo_1700000000123_deadbeef.png", name)
	assert.True(t, Pattern.MatchString(name))
}

func TestGenerateStripsUnsafeCharacters(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		wantBase string
		wantExt  string
	}{
		{"traversal", "../../etc/passwd", "passwd", ""},
		{"windows traversal", `..\..\windows\system32.dll`, "______windows_system32", ".dll"},
		{"null byte", "evil\x00name.txt", "evil_name", ".txt"},
		{"unicode", "résumé 2024.pdf", "r_sum__2024", ".pdf"},
		{"spaces and symbols", "my file (1)!.docx", "my_file__1__", ".docx"},
		{"dot file", ".env", "_env", ""},
		{"empty", "", "", ""},
		{"double extension", "invoice.pdf.exe", "invoice_pdf", ".exe"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := fixedGenerator([]byte{1, 2, 3, 4})
			name := g.Generate(tc.input)

			assert.Equal(t, tc.wantBase+"_1700000000123_01020304"+tc.wantExt, name)
			segment := strings.TrimSuffix(name, tc.wantExt)
			assert.NotContains(t, segment, "/")
			assert.NotContains(t, segment, `\`)
			assert.NotContains(t, segment, "..")
			assert.NotContains(t, segment, "\x00")
		})
	}
}

func TestGenerateTruncatesBase(t *testing.T) {
	g := fixedGenerator([]byte{0, 0, 0, 0})

	name := g.Generate(strings.Repeat("a", 300) + ".csv")

	base := strings.SplitN(name, "_", 2)[0]
	assert.Len(t, base, 50)
	assert.True(t, strings.HasSuffix(name, ".csv"))
}

func TestGenerateTruncatesMultibyteBase(t *testing.T) {
	g := fixedGenerator([]byte{0, 0, 0, 0})

	name := g.Generate(strings.Repeat("日", 80) + ".txt")

	assert.Equal(t, strings.Repeat("_", 50)+"_1700000000123_00000000.txt", name)
}

func TestGenerateSecureFilenameIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		name := GenerateSecureFilename("report.pdf")
		require.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
		assert.True(t, Pattern.MatchString(name), name)
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", Extension("Photo.PNG"))
	assert.Equal(t, ".exe", Extension("invoice.pdf.exe"))
	assert.Equal(t, "", Extension("README"))
	assert.Equal(t, "", Extension("dir.d/README"))
}

func TestPatternRejectsTraversal(t *testing.T) {
	for _, name := range []string{"../secret", "a/b_1700000000123_deadbeef.png", "", "photo.png"} {
		assert.False(t, Pattern.MatchString(name), name)
	}
}
