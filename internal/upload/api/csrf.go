package api

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/sirupsen/logrus"

	apperrors "github.com/SpecCon-Team/asset-app-sub001/internal/common/errors"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

const (
	// CSRFHeader carries the token echoed by the client
	CSRFHeader = "X-CSRF-Token"
	// CSRFCookie carries the token issued by the server
	CSRFCookie = "csrfToken"

	csrfTokenBytes = 32
)

// CSRFFilter rejects state-changing requests whose header token does not
// match the cookie token. It runs before the body is read.
func (h *UploadHandler) CSRFFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	if validCSRF(req.Request) {
		chain.ProcessFilter(req, resp)
		return
	}

	meta := h.requestMeta(req)
	h.log.Audit(logrus.Fields{
		"code":       apperrors.CodeCSRFRequired,
		"method":     req.Request.Method,
		"path":       req.Request.URL.Path,
		"ip":         meta.RemoteIP,
		"user_agent": meta.UserAgent,
	}).Warn("CSRF validation failed")
	h.metrics.Rejected(string(apperrors.CodeCSRFRequired))
	writeError(resp, apperrors.ErrCSRFRequired)
}

func validCSRF(r *http.Request) bool {
	header := r.Header.Get(CSRFHeader)
	if header == "" {
		return false
	}
	cookie, err := r.Cookie(CSRFCookie)
	if err != nil || cookie.Value == "" {
		return false
	}
	return hmac.Equal([]byte(header), []byte(cookie.Value))
}

// IssueCSRFToken sets a fresh token cookie and returns the same token so the
// client can echo it in the header
func (h *UploadHandler) IssueCSRFToken(req *restful.Request, resp *restful.Response) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		writeError(resp, apperrors.Wrap(err, apperrors.KindIO, apperrors.CodeInternal, "Failed to generate CSRF token"))
		return
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	http.SetCookie(resp.ResponseWriter, &http.Cookie{
		Name:     CSRFCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.Request.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	resp.WriteHeaderAndJson(http.StatusOK, model.CSRFToken{
		Token:  token,
		Header: CSRFHeader,
		Cookie: CSRFCookie,
	}, restful.MIME_JSON)
}
