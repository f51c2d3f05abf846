package routes

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-dorm-trust/controllers"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/middleware"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/navbryce/next-dorm-trust/util"
)

type adminRoutes struct {
	controller *controllers.AdminController
	audit      *controllers.AuditController
}

func AddAdminRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.AdminController, audit *controllers.AuditController, authClient *auth.Client) {
	routes := adminRoutes{controller, audit}
	admins := group.Group("/admins", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	admins.POST("/:id", util.HandlerWrapper(routes.update, &util.HandlerOpts{}))

	auditGroup := group.Group("/audit", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	auditGroup.GET("", util.HandlerWrapper(routes.listAudit, &util.HandlerOpts{}))
}

type updateAdminReq struct {
	SuperUser *bool              `json:"superUser"`
	Status    *model.AdminStatus `json:"status"`
}

func (ar *adminRoutes) update(c *gin.Context) (interface{}, *util.HTTPError) {
	var req updateAdminReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	admin, err := ar.controller.Update(c, middleware.GetPrincipal(c), c.Param("id"), &controllers.UpdateAdminReq{
		SuperUser: req.SuperUser,
		Status:    req.Status,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return admin, nil
}

func (ar *adminRoutes) listAudit(c *gin.Context) (interface{}, *util.HTTPError) {
	entries, err := ar.audit.List(c, middleware.GetPrincipal(c), c.Query("targetTable"), c.Query("targetId"))
	if err != nil {
		return nil, util.FromError(err)
	}
	return entries, nil
}
