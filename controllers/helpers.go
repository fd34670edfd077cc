package controllers

import (
	"strings"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes and validates the request body, writing a 400 on failure.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		utils.HandleError(c, utils.CreateValidationError(err))
		return false
	}
	return true
}

// bindQuery validates the filter parameters of a list request.
func bindQuery(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindQuery(v); err != nil {
		utils.HandleError(c, utils.CreateValidationError(err))
		return false
	}
	return true
}

func pageParams(c *gin.Context) (utils.PageParams, bool) {
	page, err := utils.ParsePageParams(c)
	if err != nil {
		utils.HandleError(c, err)
		return page, false
	}
	return page, true
}

// pathID reads a UUID route parameter.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !models.IsID(id) {
		utils.HandleError(c, utils.CreateBadRequestError("Invalid "+name))
		return "", false
	}
	return id, true
}

func currentUser(c *gin.Context) (*utils.LoginUser, bool) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return nil, false
	}
	return user, true
}

// splitList parses a comma separated query value, dropping blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
