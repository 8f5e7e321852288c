package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie     = "localbiz_flash"
	flashContextKey = "flashes_pending"
)

// Flash levels
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// AddFlash queues a message for the next rendered page, this request or the next one.
func AddFlash(c *gin.Context, level, message string) {
	flashes := pending(c)
	flashes = append(flashes, Flash{Level: level, Message: message})
	c.Set(flashContextKey, flashes)

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", false, true)
}

// PopFlashes returns queued messages and clears them.
func PopFlashes(c *gin.Context) []Flash {
	var flashes []Flash
	if _, queued := c.Get(flashContextKey); queued {
		flashes = pending(c)
	} else if value, err := c.Cookie(flashCookie); err == nil && value != "" {
		if raw, err := base64.RawURLEncoding.DecodeString(value); err == nil {
			_ = json.Unmarshal(raw, &flashes)
		}
	} else {
		return nil
	}

	c.Set(flashContextKey, []Flash{})
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return flashes
}

func pending(c *gin.Context) []Flash {
	v, ok := c.Get(flashContextKey)
	if !ok {
		return nil
	}
	flashes, _ := v.([]Flash)
	return flashes
}
