package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shortlink/services"
)

type LinkHandler struct {
	links *services.LinkService
}

func NewLinkHandler(links *services.LinkService) *LinkHandler {
	return &LinkHandler{links: links}
}

type CreateLinkRequest struct {
	OriginalURL string `json:"originalUrl"`
	ExpiryDate  string `json:"expiryDate"`
	Remarks     string `json:"remarks"`
	UserID      uint   `json:"userId"`
}

type UpdateLinkRequest struct {
	OriginalURL string `json:"originalUrl"`
	ExpiryDate  string `json:"expiryDate"`
	Remarks     string `json:"remarks"`
}

func (h *LinkHandler) Create(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	link, err := h.links.Create(services.CreateLinkParams{
		OriginalURL: req.OriginalURL,
		ExpiryDate:  req.ExpiryDate,
		Remarks:     req.Remarks,
		UserID:      req.UserID,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		Scheme:      requestScheme(c),
		Host:        c.Request.Host,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Original URL, expiry date, and remarks are required"})
			return
		}
		log.Error().Err(err).Msg("link create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create shortened URL"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"originalUrl": link.OriginalURL,
		"shortUrl":    link.ShortURL,
		"expiryDate":  link.ExpiryDate,
		"remarks":     link.Remarks,
		"ipAddress":   link.IPAddress,
		"userDevice":  link.UserDevice,
	})
}

func (h *LinkHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	links, err := h.links.ListByUser(uint(userID))
	if err != nil {
		log.Error().Err(err).Msg("link list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, links)
}

// Redirect resolves a short code, records the visit and bounces the
// caller to the original URL. Redirect responses carry no body.
func (h *LinkHandler) Redirect(c *gin.Context) {
	link, err := h.links.Resolve(c.Param("shortId"), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "URL not found"})
		case errors.Is(err, services.ErrExpired):
			c.JSON(http.StatusGone, gin.H{"message": "URL has expired"})
		default:
			log.Error().Err(err).Msg("redirect failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to redirect"})
		}
		return
	}

	c.Redirect(http.StatusFound, link.OriginalURL)
}

func (h *LinkHandler) Update(c *gin.Context) {
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid link ID"})
		return
	}

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	link, err := h.links.Update(uint(linkID), req.OriginalURL, req.ExpiryDate, req.Remarks)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Original URL, expiry date, and remarks are required"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Link not found"})
		default:
			log.Error().Err(err).Msg("link update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update link"})
		}
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *LinkHandler) Delete(c *gin.Context) {
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid link ID"})
		return
	}

	if err := h.links.Delete(uint(linkID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Link not found"})
			return
		}
		log.Error().Err(err).Msg("link delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
}

func (h *LinkHandler) AnalyticsByDate(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	analytics, err := h.links.AnalyticsByDate(uint(userID))
	if err != nil {
		log.Error().Err(err).Msg("date analytics failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch date-wise analytics"})
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func (h *LinkHandler) AnalyticsByDevice(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	analytics, err := h.links.AnalyticsByDevice(uint(userID))
	if err != nil {
		log.Error().Err(err).Msg("device analytics failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch device-wise analytics"})
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// requestScheme mirrors how the inbound request reached us, proxy header
// included. The short URL domain therefore reflects whatever host and
// scheme the client used.
func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
