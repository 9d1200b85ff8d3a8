package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      json
// @Success      200 {string}  string "ok"
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v %q", name, raw)
	}

	return uint(parsed), nil
}
