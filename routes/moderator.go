package routes

import (
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-dorm-trust/controllers"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/middleware"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/navbryce/next-dorm-trust/util"
)

type moderatorRoutes struct {
	controller *controllers.ModeratorController
}

func AddModeratorRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.ModeratorController, authClient *auth.Client) {
	routes := moderatorRoutes{controller}
	moderators := group.Group("/moderators", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	moderators.PUT("", util.HandlerWrapper(routes.assign, &util.HandlerOpts{}))
	moderators.POST("/:id", util.HandlerWrapper(routes.update, &util.HandlerOpts{}))
	moderators.DELETE("/:id", util.HandlerWrapper(routes.end, &util.HandlerOpts{}))
}

type assignModeratorReq struct {
	CommunityId int64               `json:"communityId" binding:"required"`
	MemberId    string              `json:"memberId" binding:"required"`
	Role        model.ModeratorRole `json:"role" binding:"required"`
}

func (mr *moderatorRoutes) assign(c *gin.Context) (interface{}, *util.HTTPError) {
	var req assignModeratorReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	assignment, err := mr.controller.Assign(c, middleware.GetPrincipal(c), &controllers.AssignModeratorReq{
		CommunityId: req.CommunityId,
		MemberId:    req.MemberId,
		Role:        req.Role,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return assignment, nil
}

type updateAssignmentReq struct {
	Role  *model.ModeratorRole `json:"role"`
	EndAt *time.Time           `json:"endAt"`
}

func (mr *moderatorRoutes) update(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateAssignmentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	assignment, err := mr.controller.Update(c, middleware.GetPrincipal(c), id, &controllers.UpdateAssignmentReq{
		Role:  req.Role,
		EndAt: req.EndAt,
	})
	if err != nil {
		return nil, util.FromError(err)
	}
	return assignment, nil
}

func (mr *moderatorRoutes) end(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	// an explicit endAt backdates the end of the assignment
	if raw := c.Query("endAt"); raw != "" {
		endAt, err := util.ParseTime(raw)
		if err != nil {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "endAt malformed",
			}
		}
		if _, err := mr.controller.Update(c, middleware.GetPrincipal(c), id, &controllers.UpdateAssignmentReq{
			EndAt: &endAt,
		}); err != nil {
			return nil, util.FromError(err)
		}
		return gin.H{"id": id}, nil
	}
	if err := mr.controller.End(c, middleware.GetPrincipal(c), id); err != nil {
		return nil, util.FromError(err)
	}
	return gin.H{"id": id}, nil
}
