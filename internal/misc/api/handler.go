package api

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"

	"github.com/SpecCon-Team/asset-app-sub001/internal/misc/service"
)

// MiscHandler handles miscellaneous operations
type MiscHandler struct {
	service *service.MiscService
}

// NewMiscHandler creates a new MiscHandler
func NewMiscHandler(service *service.MiscService) *MiscHandler {
	return &MiscHandler{
		service: service,
	}
}

// GetVersion handles GET /version request
func (h *MiscHandler) GetVersion(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndJson(http.StatusOK, h.service.GetVersion(), restful.MIME_JSON)
}

// GetPolicy handles GET /policy request
func (h *MiscHandler) GetPolicy(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndJson(http.StatusOK, h.service.GetPolicy(), restful.MIME_JSON)
}
