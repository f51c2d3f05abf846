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

type escalationRoutes struct {
	controller *controllers.EscalationController
}

func AddEscalationRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.EscalationController, authClient *auth.Client) {
	routes := escalationRoutes{controller}
	escalations := group.Group("/escalations", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	escalations.PUT("", util.HandlerWrapper(routes.open, &util.HandlerOpts{}))
	escalations.GET("/:id", util.HandlerWrapper(routes.getById, &util.HandlerOpts{}))
	escalations.POST("/:id", util.HandlerWrapper(routes.update, &util.HandlerOpts{}))
}

type openEscalationReq struct {
	ReportId           int64   `json:"reportId" binding:"required"`
	DestinationAdminId *string `json:"destinationAdminId"`
	Reason             string  `json:"reason" binding:"required"`
}

func (er *escalationRoutes) open(c *gin.Context) (interface{}, *util.HTTPError) {
	var req openEscalationReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	escalation, err := er.controller.Open(c, middleware.GetPrincipal(c), &controllers.OpenEscalationReq{
		ReportId:           req.ReportId,
		DestinationAdminId: req.DestinationAdminId,
		Reason:             req.Reason,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return escalation, nil
}

func (er *escalationRoutes) getById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	escalation, err := er.controller.GetById(c, middleware.GetPrincipal(c), id)
	if err != nil {
		return nil, util.FromError(err)
	}
	return escalation, nil
}

type updateEscalationReq struct {
	Status             *model.EscalationStatus `json:"status"`
	DestinationAdminId *string                 `json:"destinationAdminId"`
	ResolutionSummary  *string                 `json:"resolutionSummary"`
}

func (er *escalationRoutes) update(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateEscalationReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	escalation, err := er.controller.Update(c, middleware.GetPrincipal(c), id, &db.UpdateEscalation{
		Status:             req.Status,
		DestinationAdminId: req.DestinationAdminId,
		ResolutionSummary:  req.ResolutionSummary,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return escalation, nil
}
