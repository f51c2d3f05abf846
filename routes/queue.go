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

type queueRoutes struct {
	controller *controllers.QueueController
}

func AddQueueRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.QueueController, authClient *auth.Client) {
	routes := queueRoutes{controller}
	queue := group.Group("/queue", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	queue.PUT("", util.HandlerWrapper(routes.enqueue, &util.HandlerOpts{}))
	queue.GET("", util.HandlerWrapper(routes.listOpen, &util.HandlerOpts{}))
	queue.POST("/:id/assign", util.HandlerWrapper(routes.assign, &util.HandlerOpts{}))
	queue.POST("/:id/status", util.HandlerWrapper(routes.updateStatus, &util.HandlerOpts{}))
	queue.DELETE("/:id", util.HandlerWrapper(routes.delete, &util.HandlerOpts{}))
}

type enqueueReq struct {
	CommunityId int64 `json:"communityId" binding:"required"`
	ReportId    int64 `json:"reportId" binding:"required"`
	Priority    int   `json:"priority"`
}

func (qr *queueRoutes) enqueue(c *gin.Context) (interface{}, *util.HTTPError) {
	var req enqueueReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	entry, err := qr.controller.Enqueue(c, middleware.GetPrincipal(c), &controllers.EnqueueReq{
		CommunityId: req.CommunityId,
		ReportId:    req.ReportId,
		Priority:    req.Priority,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return entry, nil
}

func (qr *queueRoutes) listOpen(c *gin.Context) (interface{}, *util.HTTPError) {
	communityId, httpErr := util.ParseId(c.Query("communityId"))
	if httpErr != nil {
		return nil, httpErr
	}
	entries, err := qr.controller.ListOpen(c, middleware.GetPrincipal(c), communityId)
	if err != nil {
		return nil, util.FromError(err)
	}
	return entries, nil
}

type assignReq struct {
	ModeratorId string `json:"moderatorId" binding:"required"`
}

func (qr *queueRoutes) assign(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req assignReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	entry, err := qr.controller.Assign(c, middleware.GetPrincipal(c), id, req.ModeratorId)
	if err != nil {
		return nil, util.FromError(err)
	}
	return entry, nil
}

type updateQueueStatusReq struct {
	Status model.QueueStatus `json:"status" binding:"required"`
}

func (qr *queueRoutes) updateStatus(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateQueueStatusReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	entry, err := qr.controller.UpdateStatus(c, middleware.GetPrincipal(c), id, req.Status)
	if err != nil {
		return nil, util.FromError(err)
	}
	return entry, nil
}

func (qr *queueRoutes) delete(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := qr.controller.Delete(c, middleware.GetPrincipal(c), id); err != nil {
		return nil, util.FromError(err)
	}
	return gin.H{"id": id}, nil
}
