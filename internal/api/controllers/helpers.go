package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nps/internal/models/db_models"
	"nps/internal/services"
	"nps/pkg/middleware"
	"nps/pkg/utils"
)

// pathID parses a numeric path parameter and answers 400 when it is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// currentActor reads the caller set by the JWT middleware.
func currentActor(c *gin.Context) services.Actor {
	return services.Actor{
		ID:   c.GetInt64(middleware.ContextUserID),
		Role: db_models.Role(c.GetString(middleware.ContextRole)),
	}
}
