package controllers

import (
	"net/http"

	"diabkit/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	if c.GetBool("guest") {
		c.JSON(http.StatusOK, services.GuestProfile())
		return
	}
	profile, err := services.GetUserProfile(c.GetString("email"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	var input services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.UpdateUserProfile(c.GetString("email"), input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// DTXTrend serves the dashboard's glucose series. Mock data until
// device sync lands.
func DTXTrend(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"series": services.DTXMockSeries})
}
