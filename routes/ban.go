package routes

import (
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-dorm-trust/controllers"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/middleware"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/navbryce/next-dorm-trust/util"
)

type banRoutes struct {
	controller *controllers.BanController
}

func AddBanRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.BanController, authClient *auth.Client) {
	routes := banRoutes{controller}
	bans := group.Group("/bans", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	bans.PUT("", util.HandlerWrapper(routes.issue, &util.HandlerOpts{}))
	bans.GET("", util.HandlerWrapper(routes.listForMember, &util.HandlerOpts{}))
	bans.POST("/:id", util.HandlerWrapper(routes.update, &util.HandlerOpts{}))
}

type issueBanReq struct {
	BannedMemberId string        `json:"bannedMemberId" binding:"required"`
	CommunityId    *int64        `json:"communityId"`
	ReportId       *int64        `json:"reportId"`
	Reason         string        `json:"reason" binding:"required"`
	BanType        model.BanType `json:"banType" binding:"required"`
	StartAt        time.Time     `json:"startAt" binding:"required"`
	EndAt          *time.Time    `json:"endAt"`
}

func (br *banRoutes) issue(c *gin.Context) (interface{}, *util.HTTPError) {
	var req issueBanReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	ban, err := br.controller.Issue(c, middleware.GetPrincipal(c), &controllers.IssueBanReq{
		BannedMemberId: req.BannedMemberId,
		CommunityId:    req.CommunityId,
		ReportId:       req.ReportId,
		Reason:         req.Reason,
		BanType:        req.BanType,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return ban, nil
}

func (br *banRoutes) listForMember(c *gin.Context) (interface{}, *util.HTTPError) {
	memberId := c.Query("memberId")
	if memberId == "" {
		memberId = middleware.GetPrincipal(c).Id
	}
	bans, err := br.controller.ListForMember(c, middleware.GetPrincipal(c), memberId)
	if err != nil {
		return nil, util.FromError(err)
	}
	return bans, nil
}

type updateBanReq struct {
	IsActive *bool      `json:"isActive"`
	EndAt    *time.Time `json:"endAt"`
	Reason   *string    `json:"reason"`
}

func (br *banRoutes) update(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateBanReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	ban, err := br.controller.Update(c, middleware.GetPrincipal(c), id, &db.UpdateBan{
		IsActive: req.IsActive,
		EndAt:    req.EndAt,
		Reason:   req.Reason,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return ban, nil
}
