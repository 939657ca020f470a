package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"net/http"
	"strconv"

	"corso/internal/models/request_models"
	"corso/internal/services"
	"corso/pkg/utils"
)

type PlaceController struct {
	placeService services.PlaceServiceInterface
}

func NewPlaceController(placeService services.PlaceServiceInterface) *PlaceController {
	return &PlaceController{
		placeService: placeService,
	}
}

func (p *PlaceController) GetPlaceById(c *gin.Context) {
	placeID := c.Param("id")
	if placeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place ID is required")
		return
	}

	place, err := p.placeService.GetPlaceByID(c.Request.Context(), c.GetString("user_id"), placeID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place fetched successfully")
}

func (p *PlaceController) ListPlaces(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.HandleServiceError(c, utils.ErrInvalidPage)
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.HandleServiceError(c, utils.ErrInvalidPageSize)
		return
	}

	userID := c.GetString("user_id")

	places, err := p.placeService.ListPlaces(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

func (p *PlaceController) CreatePlace(c *gin.Context) {
	var req request_models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	id, err := p.placeService.CreatePlace(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Place created successfully")
}

func (p *PlaceController) UpdatePlace(c *gin.Context) {
	var req request_models.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.placeService.UpdatePlace(c.Request.Context(), c.GetString("user_id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Place updated successfully")
}

func (p *PlaceController) DeletePlace(c *gin.Context) {
	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid place ID")
		return
	}

	if err := p.placeService.DeletePlace(c.Request.Context(), c.GetString("user_id"), placeID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Place deleted successfully")
}

func (p *PlaceController) GetSimilarPlaces(c *gin.Context) {
	placeID := c.Param("id")
	if placeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place ID is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	similar, err := p.placeService.GetSimilarPlaces(c.Request.Context(), placeID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, similar, "Similar places fetched successfully")
}
