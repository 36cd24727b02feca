package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/hotel-booking-system-backend/google"
)

type GoogleHandler struct {
	client google.IdentityClient
}

func NewGoogleHandler(client google.IdentityClient) *GoogleHandler {
	return &GoogleHandler{client: client}
}

func (h *GoogleHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/user/info", GoogleAuth(h.client), h.GetUserInfo)
	rg.GET("/oauth/callback", h.OAuthCallback)
}

func (h *GoogleHandler) GetUserInfo(c *gin.Context) {
	user := c.MustGet("user").(google.GoogleUser)

	c.IndentedJSON(http.StatusOK, user)
}

func (h *GoogleHandler) OAuthCallback(c *gin.Context) {
	code := c.Query("code")
	token, err := h.client.ExchangeCode(c.Request.Context(), code)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get oauth2 token"})
		return
	}

	c.IndentedJSON(http.StatusOK, token)
}
