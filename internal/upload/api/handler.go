package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/emicklei/go-restful/v3"

	apperrors "github.com/SpecCon-Team/asset-app-sub001/internal/common/errors"
	"github.com/SpecCon-Team/asset-app-sub001/internal/metrics"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/policy"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/service"
	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// RequestIDHeader is set on every request by the server's request filter
const RequestIDHeader = "X-Request-ID"

// UploadHandler handles upload, download and cleanup requests
type UploadHandler struct {
	service *service.UploadService
	metrics *metrics.Metrics
	log     *logger.Logger

	// X-Forwarded-For is only honoured when the peer is in one of these
	trustedProxies []*net.IPNet
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(svc *service.UploadService, m *metrics.Metrics) *UploadHandler {
	return &UploadHandler{
		service: svc,
		metrics: m,
		log:     logger.New(),
	}
}

// TrustProxies sets the proxies allowed to report the client address in
// X-Forwarded-For. Entries are CIDR ranges or single addresses.
func (h *UploadHandler) TrustProxies(proxies []string) error {
	nets := make([]*net.IPNet, 0, len(proxies))
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return fmt.Errorf("invalid trusted proxy: %s", p)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(p)
		if err != nil {
			return fmt.Errorf("invalid trusted proxy: %s", p)
		}
		nets = append(nets, ipNet)
	}
	h.trustedProxies = nets
	return nil
}

// UploadFiles handles multipart uploads of up to five files
func (h *UploadHandler) UploadFiles(req *restful.Request, resp *restful.Response) {
	ctx := req.Request.Context()
	meta := h.requestMeta(req)

	req.Request.Body = http.MaxBytesReader(resp.ResponseWriter, req.Request.Body, policy.MaxRequestBytes)
	mr, err := req.Request.MultipartReader()
	if err != nil {
		h.metrics.Rejected(string(apperrors.CodeInvalidMultipart))
		writeError(resp, apperrors.Wrap(err, apperrors.KindRequest, apperrors.CodeInvalidMultipart, "Invalid multipart form"))
		return
	}

	candidates, err := h.service.ReadCandidates(ctx, mr, meta)
	if err != nil {
		writeError(resp, err)
		return
	}

	files, err := h.service.ProcessBatch(ctx, candidates, meta)
	if err != nil {
		writeError(resp, err)
		return
	}

	resp.WriteHeaderAndJson(http.StatusCreated, model.UploadResponse{
		Success:  true,
		Filename: files[0].SecureFilename,
		Files:    files,
	}, restful.MIME_JSON)
}

// ListFiles handles GET /uploads
func (h *UploadHandler) ListFiles(req *restful.Request, resp *restful.Response) {
	files, err := h.service.List(req.Request.Context())
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeaderAndJson(http.StatusOK, model.FileList{Files: files}, restful.MIME_JSON)
}

// HeadFile returns stored file metadata in the X-Upload-Stat header
func (h *UploadHandler) HeadFile(req *restful.Request, resp *restful.Response) {
	f, err := h.service.Get(req.Request.Context(), req.PathParameter("name"))
	if err != nil {
		resp.WriteHeader(apperrors.As(err).Status)
		return
	}

	statJSON, err := json.Marshal(f)
	if err != nil {
		resp.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp.Header().Set("Content-Type", f.ContentType)
	resp.Header().Set("Content-Length", fmt.Sprintf("%d", f.SizeBytes))
	resp.Header().Set("X-Upload-Stat", string(statJSON))
	resp.WriteHeader(http.StatusOK)
}

// GetFile streams a stored file as an attachment
func (h *UploadHandler) GetFile(req *restful.Request, resp *restful.Response) {
	f, content, err := h.service.Open(req.Request.Context(), req.PathParameter("name"))
	if err != nil {
		writeError(resp, err)
		return
	}
	defer content.Close()

	resp.Header().Set("Content-Type", f.ContentType)
	resp.Header().Set("Content-Length", fmt.Sprintf("%d", f.SizeBytes))
	resp.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.SecureFilename))
	resp.Header().Set("X-Content-Type-Options", "nosniff")
	resp.WriteHeader(http.StatusOK)

	if _, err := io.Copy(resp, content); err != nil {
		h.log.Error("Error copying file content for %s: %v", f.SecureFilename, err)
	}
}

// DeleteFile removes a stored file
func (h *UploadHandler) DeleteFile(req *restful.Request, resp *restful.Response) {
	if err := h.service.Delete(req.Request.Context(), req.PathParameter("name")); err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeader(http.StatusNoContent)
}

// CleanupFiles runs the cleanup sweep immediately
func (h *UploadHandler) CleanupFiles(req *restful.Request, resp *restful.Response) {
	var maxAge time.Duration
	if raw := req.QueryParameter("maxAge"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeError(resp, apperrors.Newf(apperrors.KindRequest, apperrors.CodeInvalidRequest,
				"Invalid maxAge: %s", raw))
			return
		}
		maxAge = d
	}

	result, err := h.service.CleanupOldFiles(req.Request.Context(), maxAge)
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeaderAndJson(http.StatusOK, result, restful.MIME_JSON)
}

// writeError writes the JSON body for a typed error. Storage failures keep
// the processing result shape so clients see success:false.
func writeError(resp *restful.Response, err error) {
	e := apperrors.As(err)
	if e.Code == apperrors.CodeProcessingFailed {
		resp.WriteHeaderAndJson(e.Status, model.UploadResult{
			Success: false,
			Error:   e.Message,
		}, restful.MIME_JSON)
		return
	}

	resp.WriteHeaderAndJson(e.Status, model.ErrorResponse{
		Error:   http.StatusText(e.Status),
		Message: e.Message,
		Code:    string(e.Code),
	}, restful.MIME_JSON)
}

// requestMeta collects the audit fields of a request. The client address is
// the peer address unless the peer is a trusted proxy, in which case it is
// the right-most X-Forwarded-For hop not belonging to a trusted proxy.
func (h *UploadHandler) requestMeta(req *restful.Request) service.RequestMeta {
	r := req.Request
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}

	if h.trusted(ip) {
		if fwd := r.Header.Values("X-Forwarded-For"); len(fwd) > 0 {
			hops := strings.Split(strings.Join(fwd, ","), ",")
			for i := len(hops) - 1; i >= 0; i-- {
				hop := strings.TrimSpace(hops[i])
				if hop == "" {
					continue
				}
				ip = hop
				if !h.trusted(hop) {
					break
				}
			}
		}
	}

	return service.RequestMeta{
		RequestID: r.Header.Get(RequestIDHeader),
		RemoteIP:  ip,
		UserAgent: r.UserAgent(),
	}
}

func (h *UploadHandler) trusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range h.trustedProxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
