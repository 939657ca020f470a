package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"

	"corso/internal/models/request_models"
	"corso/internal/services"
	"corso/pkg/utils"
)

type AnalyzeController struct {
	analyzerService services.AnalyzerServiceInterface
}

func NewAnalyzeController(analyzerService services.AnalyzerServiceInterface) *AnalyzeController {
	return &AnalyzeController{
		analyzerService: analyzerService,
	}
}

// AnalyzeLink godoc
// @Summary Analyze a social link
// @Description Extract and classify the place a social post (Instagram, YouTube, Naver Blog) is about, and save it
// @Tags Links
// @Accept json
// @Produce json
// @Param request body request_models.AnalyzeLinkRequest true "Link and post text"
// @Success 200 {object} response_models.Place
// @Security BearerAuth
// @Router /links/analyze [post]
func (a *AnalyzeController) AnalyzeLink(c *gin.Context) {
	var req request_models.AnalyzeLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	place, err := a.analyzerService.AnalyzeLink(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Link analyzed successfully")
}
