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

type reportRoutes struct {
	controller *controllers.ReportController
}

func AddReportRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.ReportController, authClient *auth.Client) {
	routes := reportRoutes{controller}
	reports := group.Group("/reports")

	// platform-banned members keep read access to reports (a reporter can
	// still see the outcome of their own report), so the ban gate only
	// guards the mutating routes
	reads := reports.Group("", middleware.Auth(database, authClient, &middleware.AuthConfig{BanNotChecked: true}))
	reads.GET("", util.HandlerWrapper(routes.listReports, &util.HandlerOpts{}))
	reads.GET("/:id", util.HandlerWrapper(routes.getReportById, &util.HandlerOpts{}))

	writes := reports.Group("", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	writes.PUT("", util.HandlerWrapper(routes.createReport, &util.HandlerOpts{}))
	writes.POST("/:id/status", util.HandlerWrapper(routes.updateReportStatus, &util.HandlerOpts{}))
	writes.DELETE("/:id", util.HandlerWrapper(routes.deleteReport, &util.HandlerOpts{}))
}

type createReportReq struct {
	PostId     *int64 `json:"postId"`
	CommentId  *int64 `json:"commentId"`
	CategoryId int64  `json:"categoryId" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

func (rr *reportRoutes) createReport(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createReportReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	report, err := rr.controller.Create(c, middleware.GetPrincipal(c), &controllers.CreateReportReq{
		PostId:     req.PostId,
		CommentId:  req.CommentId,
		CategoryId: req.CategoryId,
		Reason:     req.Reason,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return report, nil
}

func (rr *reportRoutes) getReportById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	report, err := rr.controller.GetById(c, middleware.GetPrincipal(c), id)
	if err != nil {
		return nil, util.FromError(err)
	}
	return report, nil
}

func (rr *reportRoutes) listReports(c *gin.Context) (interface{}, *util.HTTPError) {
	status := model.ReportStatus(c.DefaultQuery("status", string(model.ReportStatusPending)))
	limit, httpErr := util.ParseLimit(c.DefaultQuery("limit", "50"))
	if httpErr != nil {
		return nil, httpErr
	}
	reports, err := rr.controller.ListByStatus(c, middleware.GetPrincipal(c), status, limit)
	if err != nil {
		return nil, util.FromError(err)
	}
	return reports, nil
}

type updateReportStatusReq struct {
	Status           model.ReportStatus `json:"status" binding:"required"`
	ModerationResult *string            `json:"moderationResult"`
}

func (rr *reportRoutes) updateReportStatus(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateReportStatusReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	report, err := rr.controller.UpdateStatus(c, middleware.GetPrincipal(c), id, &controllers.UpdateReportStatusReq{
		Status:           req.Status,
		ModerationResult: req.ModerationResult,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return report, nil
}

func (rr *reportRoutes) deleteReport(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := rr.controller.Delete(c, middleware.GetPrincipal(c), id); err != nil {
		return nil, util.FromError(err)
	}
	return gin.H{"id": id}, nil
}
