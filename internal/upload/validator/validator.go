package validator

import (
	"bytes"

	apperrors "github.com/SpecCon-Team/asset-app-sub001/internal/common/errors"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/policy"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/sanitize"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

const scanWindow = 1024

type signature struct {
	name  string
	magic []byte
}

var zipSignature = signature{name: "ZIP archive", magic: []byte{0x50, 0x4B, 0x03, 0x04}}

var signatures = []signature{
	{name: "Windows PE executable", magic: []byte{0x4D, 0x5A}},
	{name: "ELF executable", magic: []byte{0x7F, 0x45, 0x4C, 0x46}},
	{name: "Java class file", magic: []byte{0xCA, 0xFE, 0xBA, 0xBE}},
	zipSignature,
}

// Patterns are matched lower-case against the scan window
var suspiciousPatterns = [][]byte{
	[]byte("eval("),
	[]byte("<script"),
	[]byte("javascript:"),
	[]byte("vbscript:"),
}

// Validator applies the upload policy and the content scan
type Validator struct {
	policy *policy.Policy
}

// New creates a validator bound to a policy
func New(p *policy.Policy) *Validator {
	return &Validator{policy: p}
}

// Policy returns the policy the validator enforces
func (v *Validator) Policy() *policy.Policy {
	return v.policy
}

// ValidateFile checks extension, content type and size, stopping at the
// first failure
func (v *Validator) ValidateFile(c *model.UploadCandidate) model.ValidationResult {
	if err := v.Check(c); err != nil {
		e := apperrors.As(err)
		return model.ValidationResult{Accepted: false, Code: string(e.Code), Reason: e.Message}
	}
	return model.ValidationResult{Accepted: true}
}

// Check is ValidateFile returning a typed error
func (v *Validator) Check(c *model.UploadCandidate) error {
	ext := sanitize.Extension(c.OriginalName)
	if v.policy.IsDangerousExtension(ext) {
		return dangerousExtension(ext)
	}

	entry, ok := v.policy.Lookup(c.DeclaredContentType)
	if !ok {
		return unsupportedType(c.DeclaredContentType)
	}

	if c.SizeBytes > entry.MaxSizeBytes {
		return tooLarge(entry.MaxSizeBytes)
	}

	if !v.policy.AllowsExtension(entry.ContentType, ext) {
		return extensionMismatch(ext, entry.ContentType)
	}
	return nil
}

// ValidateHeader runs the checks that need no payload. It is applied while
// a multipart part is still unread so rejected files are never buffered.
func (v *Validator) ValidateHeader(originalName, contentType string) error {
	ext := sanitize.Extension(originalName)
	if v.policy.IsDangerousExtension(ext) {
		return dangerousExtension(ext)
	}
	entry, ok := v.policy.Lookup(contentType)
	if !ok {
		return unsupportedType(contentType)
	}
	if !v.policy.AllowsExtension(entry.ContentType, ext) {
		return extensionMismatch(ext, entry.ContentType)
	}
	return nil
}

// SizeLimit returns the per-type byte limit, or zero for unknown types
func (v *Validator) SizeLimit(contentType string) int64 {
	entry, ok := v.policy.Lookup(contentType)
	if !ok {
		return 0
	}
	return entry.MaxSizeBytes
}

// DetectMalware inspects raw bytes regardless of declared type
func (v *Validator) DetectMalware(payload []byte) model.ScanResult {
	return detect(payload, false)
}

// Scan is the pipeline scan phase. The ZIP signature is skipped when the
// declared type is a ZIP-based format the policy allows; every other
// signature and pattern still applies.
func (v *Validator) Scan(contentType string, payload []byte) error {
	result := detect(payload, v.policy.IsContainer(contentType))
	if !result.Clean {
		return apperrors.Newf(apperrors.KindSecurity, apperrors.CodeMalwareDetected, "%s", result.Threat)
	}
	return nil
}

func detect(payload []byte, allowZip bool) model.ScanResult {
	for _, sig := range signatures {
		if allowZip && bytes.Equal(sig.magic, zipSignature.magic) {
			continue
		}
		if bytes.HasPrefix(payload, sig.magic) {
			return model.ScanResult{
				Clean:  false,
				Threat: "Potentially malicious file detected: " + sig.name + " signature",
			}
		}
	}

	window := payload
	if len(window) > scanWindow {
		window = window[:scanWindow]
	}
	lower := bytes.ToLower(window)
	for _, pattern := range suspiciousPatterns {
		if bytes.Contains(lower, pattern) {
			return model.ScanResult{
				Clean:  false,
				Threat: "Suspicious content pattern detected: " + string(pattern),
			}
		}
	}

	return model.ScanResult{Clean: true}
}

func dangerousExtension(ext string) error {
	return apperrors.Newf(apperrors.KindPolicy, apperrors.CodeDangerousExtension,
		"File type not allowed: %s files are potentially dangerous", ext)
}

func unsupportedType(contentType string) error {
	return apperrors.Newf(apperrors.KindPolicy, apperrors.CodeUnsupportedType,
		"Unsupported file type: %s", contentType)
}

func tooLarge(limit int64) error {
	return apperrors.Newf(apperrors.KindPolicy, apperrors.CodeFileTooLarge,
		"File too large. Maximum size for this type is %dMB", limit/(1024*1024))
}

func extensionMismatch(ext, contentType string) error {
	return apperrors.Newf(apperrors.KindPolicy, apperrors.CodeExtensionMismatch,
		"File extension %q does not match content type %s", ext, contentType)
}
