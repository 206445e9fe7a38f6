package policy

import (
	"sort"
	"strings"

	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

const mb = 1024 * 1024

// Request-level caps, applied before any per-type limit
const (
	MaxRequestBytes  = 20 * mb
	MaxFilesPerBatch = 5
)

// Policy is the immutable set of upload rules. Build it once with Default
// and share the pointer; nothing mutates it after construction.
type Policy struct {
	entries   map[string]entry
	dangerous map[string]struct{}
}

type entry struct {
	maxSize    int64
	extensions map[string]struct{}
	container  bool
}

var defaultEntries = []model.PolicyEntry{
	{ContentType: "image/jpeg", AllowedExtensions: []string{".jpg", ".jpeg"}, MaxSizeBytes: 5 * mb},
	{ContentType: "image/png", AllowedExtensions: []string{".png"}, MaxSizeBytes: 5 * mb},
	{ContentType: "image/gif", AllowedExtensions: []string{".gif"}, MaxSizeBytes: 5 * mb},
	{ContentType: "image/webp", AllowedExtensions: []string{".webp"}, MaxSizeBytes: 5 * mb},
	{ContentType: "application/pdf", AllowedExtensions: []string{".pdf"}, MaxSizeBytes: 10 * mb},
	{ContentType: "application/msword", AllowedExtensions: []string{".doc"}, MaxSizeBytes: 10 * mb},
	{ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", AllowedExtensions: []string{".docx"}, MaxSizeBytes: 10 * mb, Container: true},
	{ContentType: "application/vnd.ms-excel", AllowedExtensions: []string{".xls"}, MaxSizeBytes: 10 * mb},
	{ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", AllowedExtensions: []string{".xlsx"}, MaxSizeBytes: 10 * mb, Container: true},
	{ContentType: "text/plain", AllowedExtensions: []string{".txt"}, MaxSizeBytes: 5 * mb},
	{ContentType: "text/csv", AllowedExtensions: []string{".csv"}, MaxSizeBytes: 2 * mb},
	{ContentType: "application/zip", AllowedExtensions: []string{".zip"}, MaxSizeBytes: 20 * mb, Container: true},
	{ContentType: "application/x-zip-compressed", AllowedExtensions: []string{".zip"}, MaxSizeBytes: 20 * mb, Container: true},
	{ContentType: "application/x-rar-compressed", AllowedExtensions: []string{".rar"}, MaxSizeBytes: 20 * mb},
}

var dangerousExtensions = []string{
	".exe", ".bat", ".cmd", ".com", ".pif", ".scr", ".vbs", ".js", ".jar",
	".app", ".deb", ".pkg", ".dmg", ".rpm", ".msi", ".dll",
	".ps1", ".psm1", ".psd1", ".ps1xml", ".psc1",
}

// Default returns the deployment policy
func Default() *Policy {
	return New(defaultEntries, dangerousExtensions)
}

// New builds a policy from explicit entries; used by tests and Default
func New(entries []model.PolicyEntry, dangerous []string) *Policy {
	p := &Policy{
		entries:   make(map[string]entry, len(entries)),
		dangerous: make(map[string]struct{}, len(dangerous)),
	}
	for _, e := range entries {
		exts := make(map[string]struct{}, len(e.AllowedExtensions))
		for _, ext := range e.AllowedExtensions {
			exts[strings.ToLower(ext)] = struct{}{}
		}
		p.entries[NormalizeContentType(e.ContentType)] = entry{
			maxSize:    e.MaxSizeBytes,
			extensions: exts,
			container:  e.Container,
		}
	}
	for _, ext := range dangerous {
		p.dangerous[strings.ToLower(ext)] = struct{}{}
	}
	return p
}

// NormalizeContentType strips parameters and lower-cases a MIME type
func NormalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// Lookup returns the entry for a content type
func (p *Policy) Lookup(contentType string) (model.PolicyEntry, bool) {
	ct := NormalizeContentType(contentType)
	e, ok := p.entries[ct]
	if !ok {
		return model.PolicyEntry{}, false
	}
	return e.export(ct), true
}

// IsDangerousExtension reports whether ext (with leading dot) is deny-listed
func (p *Policy) IsDangerousExtension(ext string) bool {
	_, ok := p.dangerous[strings.ToLower(ext)]
	return ok
}

// AllowsExtension reports whether ext is accepted for the content type
func (p *Policy) AllowsExtension(contentType, ext string) bool {
	e, ok := p.entries[NormalizeContentType(contentType)]
	if !ok {
		return false
	}
	_, ok = e.extensions[strings.ToLower(ext)]
	return ok
}

// IsContainer reports whether the content type is a ZIP-based format
func (p *Policy) IsContainer(contentType string) bool {
	e, ok := p.entries[NormalizeContentType(contentType)]
	return ok && e.container
}

// MaxSize returns the largest per-type limit in the table
func (p *Policy) MaxSize() int64 {
	var largest int64
	for _, e := range p.entries {
		if e.maxSize > largest {
			largest = e.maxSize
		}
	}
	return largest
}

// Entries returns a sorted copy of the table
func (p *Policy) Entries() []model.PolicyEntry {
	out := make([]model.PolicyEntry, 0, len(p.entries))
	for ct, e := range p.entries {
		out = append(out, e.export(ct))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ContentType < out[j].ContentType
	})
	return out
}

// DangerousExtensions returns a sorted copy of the deny-list
func (p *Policy) DangerousExtensions() []string {
	out := make([]string, 0, len(p.dangerous))
	for ext := range p.dangerous {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func (e entry) export(contentType string) model.PolicyEntry {
	exts := make([]string, 0, len(e.extensions))
	for ext := range e.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return model.PolicyEntry{
		ContentType:       contentType,
		AllowedExtensions: exts,
		MaxSizeBytes:      e.maxSize,
		Container:         e.container,
	}
}
