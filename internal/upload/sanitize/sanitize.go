package sanitize

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

const (
	maxBaseLength = 50
	randomBytes   = 4
)

// Pattern matches every name produced by GenerateSecureFilename. The
// extension group is restricted to what the upload policy can ever accept.
var Pattern = regexp.MustCompile(`^[A-Za-z0-9_-]{0,50}_\d{13,}_[0-9a-f]{8}(\.[A-Za-z0-9]{1,10})?$`)

// Generator derives storage names from untrusted client file names
type Generator struct {
	Now     func() time.Time
	Entropy io.Reader
}

var defaultGenerator = &Generator{Now: time.Now, Entropy: rand.Reader}

// GenerateSecureFilename returns <base>_<unixMillis>_<8 hex><ext>
func GenerateSecureFilename(originalName string) string {
	return defaultGenerator.Generate(originalName)
}

// Generate builds a secure name using the generator's clock and entropy
func (g *Generator) Generate(originalName string) string {
	base, ext := SplitName(originalName)
	return fmt.Sprintf("%s_%d_%s%s", SanitizeBase(base), g.Now().UnixMilli(), g.suffix(), ext)
}

func (g *Generator) suffix() string {
	buf := make([]byte, randomBytes)
	if _, err := io.ReadFull(g.Entropy, buf); err != nil {
		// crypto/rand only fails when the kernel source is gone
		panic(fmt.Sprintf("failed to read random bytes: %v", err))
	}
	return hex.EncodeToString(buf)
}

// SplitName drops directory components and splits the last segment into
// base name and extension. A leading-dot name has no extension.
func SplitName(name string) (base, ext string) {
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name, ""
	}
	return name[:dot], name[dot:]
}

// Extension returns the lower-cased extension of a client file name
func Extension(name string) string {
	_, ext := SplitName(name)
	return strings.ToLower(ext)
}

// SanitizeBase replaces every rune outside [A-Za-z0-9_-] with '_' and
// truncates the result
func SanitizeBase(base string) string {
	var b strings.Builder
	for _, r := range base {
		if b.Len() == maxBaseLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
