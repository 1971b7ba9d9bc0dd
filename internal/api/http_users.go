package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tiendax/internal/entity"
	"tiendax/internal/service"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ListUsers returns user summaries for the admin back office.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.userService.List(ctx, &query)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser adds an account on behalf of an administrator.
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.userService.Create(ctx, CurrentUser(c), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": service.Summarize(user)})
}

// UpdateUser applies a partial update to an account.
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.userService.Update(ctx, CurrentUser(c), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": service.Summarize(user)})
}

// DeleteUser removes an account.
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.userService.Delete(ctx, CurrentUser(c), id); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true})
}

// ListActivities returns the recent activity log, newest first.
func (h *HTTPHandler) ListActivities(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	entries, err := h.activityService.List(ctx)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.ActivityListResponse{
		Activities: entries,
		Meta:       &entity.Meta{Total: int64(len(entries)), Page: 1, PageSize: int64(len(entries))},
	})
}
