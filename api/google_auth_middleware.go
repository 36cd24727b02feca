package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/hotel-booking-system-backend/google"
)

// GoogleAuth resolves the access token of a request into a verified
// identity, or rejects the request with 401.
func GoogleAuth(googleClient google.IdentityClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := c.GetHeader("accesstoken")

		if len(accessToken) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
			c.Abort()
			return
		}

		userInfo, err := googleClient.GetUserInfo(c.Request.Context(), accessToken)

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authentication"})
			c.Abort()
			return
		}

		c.Set("user", google.GoogleUser{
			Email:     userInfo.Email,
			Name:      userInfo.Name,
			AvatarURL: userInfo.Picture,
		})
		c.Set("accessToken", accessToken)
	}
}
