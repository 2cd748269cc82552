package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createCategoryRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

func (s *Server) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := s.categories.Create(c.Request.Context(), req.UserID, req.Name, req.Color, req.Icon)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) listCategories(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return
	}

	categories, err := s.categories.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) archiveCategory(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return
	}

	if err := s.categories.Archive(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
