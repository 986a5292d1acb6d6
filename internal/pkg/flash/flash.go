package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie that carries messages across a redirect.
const CookieName = "brainora_messages"

const (
	pendingKey  = "flash.pending"
	consumedKey = "flash.consumed"
	secureKey   = "flash.secure"

	maxMessages = 20
)

// Level tags a message for styling.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a one-time notice shown on the next rendered page.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Middleware records cookie options for the request.
func Middleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(secureKey, secure)
		c.Next()
	}
}

// Add queues a message for the current request.
func Add(c *gin.Context, level Level, text string) {
	pending := pendingMessages(c)
	c.Set(pendingKey, append(pending, Message{Level: level, Text: text}))
}

func Success(c *gin.Context, text string) { Add(c, LevelSuccess, text) }
func Info(c *gin.Context, text string)    { Add(c, LevelInfo, text) }
func Error(c *gin.Context, text string)   { Add(c, LevelError, text) }

// Persist writes queued and not yet shown messages to the cookie. Call it
// before redirecting.
func Persist(c *gin.Context) {
	msgs := collect(c)
	if len(msgs) == 0 {
		return
	}
	if len(msgs) > maxMessages {
		msgs = msgs[len(msgs)-maxMessages:]
	}

	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	setCookie(c, base64.RawURLEncoding.EncodeToString(data), 0)
	c.Set(pendingKey, msgs)
}

// Consume returns every message for display and clears the cookie.
func Consume(c *gin.Context) []Message {
	msgs := collect(c)
	if _, err := c.Cookie(CookieName); err == nil {
		setCookie(c, "", -1)
	}
	c.Set(pendingKey, []Message(nil))
	return msgs
}

// collect merges the incoming cookie, read once per request, with queued messages.
func collect(c *gin.Context) []Message {
	var msgs []Message
	if !c.GetBool(consumedKey) {
		c.Set(consumedKey, true)
		msgs = append(msgs, decode(c)...)
	}
	return append(msgs, pendingMessages(c)...)
}

func decode(c *gin.Context) []Message {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}

func pendingMessages(c *gin.Context) []Message {
	if v, ok := c.Get(pendingKey); ok {
		if msgs, ok := v.([]Message); ok {
			return msgs
		}
	}
	return nil
}

func setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", c.GetBool(secureKey), true)
}
