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

type appealRoutes struct {
	controller *controllers.AppealController
}

func AddAppealRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.AppealController, authClient *auth.Client) {
	routes := appealRoutes{controller}
	appeals := group.Group("/appeals", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	appeals.PUT("", util.HandlerWrapper(routes.create, &util.HandlerOpts{}))
	appeals.GET("/:id", util.HandlerWrapper(routes.getById, &util.HandlerOpts{}))
	appeals.POST("/:id/resolve", util.HandlerWrapper(routes.resolve, &util.HandlerOpts{}))
}

type createAppealReq struct {
	EscalationId int64            `json:"escalationId" binding:"required"`
	AppealType   model.AppealType `json:"appealType" binding:"required"`
}

func (ar *appealRoutes) create(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createAppealReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	appeal, err := ar.controller.Create(c, middleware.GetPrincipal(c), &controllers.CreateAppealReq{
		EscalationId: req.EscalationId,
		AppealType:   req.AppealType,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return appeal, nil
}

func (ar *appealRoutes) getById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	appeal, err := ar.controller.GetById(c, middleware.GetPrincipal(c), id)
	if err != nil {
		return nil, util.FromError(err)
	}
	return appeal, nil
}

type resolveAppealReq struct {
	ResolutionType    string `json:"resolutionType" binding:"required"`
	ResolutionComment string `json:"resolutionComment"`
}

func (ar *appealRoutes) resolve(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req resolveAppealReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	appeal, err := ar.controller.Resolve(c, middleware.GetPrincipal(c), id, &controllers.ResolveAppealReq{
		ResolutionType:    req.ResolutionType,
		ResolutionComment: req.ResolutionComment,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return appeal, nil
}
