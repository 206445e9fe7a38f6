package api

import (
	"github.com/emicklei/go-restful/v3"

	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

const mimeMultipart = "multipart/form-data"

// RegisterRoutes registers the upload routes
func RegisterRoutes(ws *restful.WebService, handler *UploadHandler) {
	ws.Route(ws.GET("/csrf-token").To(handler.IssueCSRFToken).
		Doc("issue a CSRF token cookie").
		Returns(200, "OK", model.CSRFToken{}))

	ws.Route(ws.POST("/uploads").To(handler.UploadFiles).
		Filter(handler.CSRFFilter).
		Doc("upload up to five files").
		Consumes(mimeMultipart).
		Param(ws.HeaderParameter(CSRFHeader, "token matching the csrfToken cookie").DataType("string").Required(true)).
		Returns(201, "Created", model.UploadResponse{}).
		Returns(400, "Bad Request", model.ErrorResponse{}).
		Returns(403, "Forbidden", model.ErrorResponse{}).
		Returns(413, "Request Entity Too Large", model.ErrorResponse{}).
		Returns(415, "Unsupported Media Type", model.ErrorResponse{}).
		Returns(422, "Unprocessable Entity", model.ErrorResponse{}).
		Returns(500, "Internal Server Error", model.UploadResult{}))

	ws.Route(ws.GET("/uploads").To(handler.ListFiles).
		Doc("list stored files").
		Returns(200, "OK", model.FileList{}).
		Returns(500, "Internal Server Error", model.ErrorResponse{}))

	ws.Route(ws.POST("/uploads/cleanup").To(handler.CleanupFiles).
		Filter(handler.CSRFFilter).
		Doc("remove stored files older than maxAge").
		Consumes(restful.MIME_JSON, restful.MIME_OCTET).
		Param(ws.QueryParameter("maxAge", "age threshold as a Go duration, default 168h").DataType("string")).
		Returns(200, "OK", model.CleanupResult{}).
		Returns(400, "Bad Request", model.ErrorResponse{}).
		Returns(403, "Forbidden", model.ErrorResponse{}).
		Returns(500, "Internal Server Error", model.ErrorResponse{}))

	ws.Route(ws.HEAD("/uploads/{name}").To(handler.HeadFile).
		Doc("get stored file metadata").
		Param(ws.PathParameter("name", "secure file name").DataType("string")).
		Returns(200, "OK", nil).
		Returns(400, "Bad Request", nil).
		Returns(404, "Not Found", nil))

	ws.Route(ws.GET("/uploads/{name}").To(handler.GetFile).
		Doc("download a stored file").
		Param(ws.PathParameter("name", "secure file name").DataType("string")).
		Notes("The response Content-Type is the declared type the file was accepted under.").
		Returns(200, "OK", nil).
		Returns(400, "Bad Request", model.ErrorResponse{}).
		Returns(404, "Not Found", model.ErrorResponse{}))

	ws.Route(ws.DELETE("/uploads/{name}").To(handler.DeleteFile).
		Filter(handler.CSRFFilter).
		Doc("delete a stored file").
		Param(ws.PathParameter("name", "secure file name").DataType("string")).
		Returns(204, "No Content", nil).
		Returns(400, "Bad Request", model.ErrorResponse{}).
		Returns(403, "Forbidden", model.ErrorResponse{}).
		Returns(404, "Not Found", model.ErrorResponse{}))
}
