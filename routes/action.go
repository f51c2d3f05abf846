package routes

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-dorm-trust/controllers"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/middleware"
	"github.com/navbryce/next-dorm-trust/util"
)

type actionRoutes struct {
	controller *controllers.ActionController
}

func AddActionRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.ActionController, authClient *auth.Client) {
	routes := actionRoutes{controller}
	actions := group.Group("/actions", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	actions.PUT("", util.HandlerWrapper(routes.record, &util.HandlerOpts{}))
	actions.POST("/:id", util.HandlerWrapper(routes.correct, &util.HandlerOpts{}))
}

type recordActionReq struct {
	PostId      *int64 `json:"postId"`
	CommentId   *int64 `json:"commentId"`
	ReportId    *int64 `json:"reportId"`
	ActionType  string `json:"actionType" binding:"required"`
	Description string `json:"description"`
}

func (ar *actionRoutes) record(c *gin.Context) (interface{}, *util.HTTPError) {
	var req recordActionReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	action, err := ar.controller.Record(c, middleware.GetPrincipal(c), &controllers.RecordActionReq{
		PostId:      req.PostId,
		CommentId:   req.CommentId,
		ReportId:    req.ReportId,
		ActionType:  req.ActionType,
		Description: req.Description,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return action, nil
}

type correctActionReq struct {
	ActionType  *string `json:"actionType"`
	Description *string `json:"description"`
}

func (ar *actionRoutes) correct(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req correctActionReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	action, err := ar.controller.Correct(c, middleware.GetPrincipal(c), id, &db.UpdateModerationAction{
		ActionType:  req.ActionType,
		Description: req.Description,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return action, nil
}
