package api

import (
	"github.com/emicklei/go-restful/v3"

	"github.com/SpecCon-Team/asset-app-sub001/internal/misc/model"
)

// RegisterRoutes registers the miscellaneous routes
func RegisterRoutes(ws *restful.WebService, handler *MiscHandler) {
	ws.Route(ws.GET("/version").To(handler.GetVersion).
		Doc("get server version information").
		Returns(200, "OK", model.VersionInfo{}))

	ws.Route(ws.GET("/policy").To(handler.GetPolicy).
		Doc("get the upload policy table").
		Returns(200, "OK", model.PolicyInfo{}))
}
