package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"autobook/config"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

// DistanceRequest asks for driving distance between two points.
type DistanceRequest struct {
	Origin LatLng `json:"origin" binding:"required"`
	Dest   LatLng `json:"dest" binding:"required"`
}

// distanceMatrixResponse mirrors the fields we read from Google's answer.
type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// GetDistanceMatrix proxies Google's Distance Matrix API and returns a stable
// {distanceKm, durationMins} pair. The mobile clients use it to sort nearby
// mobile detailers.
func GetDistanceMatrix(c *gin.Context) {
	var req DistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Must supply { origin: {lat,lng}, dest: {lat,lng} }"})
		return
	}

	apiKey := config.AppConfig.GoogleAPIKey
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API authentication error"})
		return
	}

	url := fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/distancematrix/json?units=metric&origins=%f,%f&destinations=%f,%f&mode=driving&key=%s",
		req.Origin.Lat, req.Origin.Lng, req.Dest.Lat, req.Dest.Lng, apiKey,
	)

	resp, err := http.Get(url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}
	defer resp.Body.Close()

	var data distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	if data.Status != "OK" || len(data.Rows) == 0 || len(data.Rows[0].Elements) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Distance lookup failed"})
		return
	}
	el := data.Rows[0].Elements[0]
	if el.Status != "OK" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "No route", "details": el.Status})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"distanceKm":   el.Distance.Value / 1000,
		"durationMins": el.Duration.Value / 60,
	})
}
