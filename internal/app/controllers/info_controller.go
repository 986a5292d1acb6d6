package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/team"
)

// InfoController serves the public pages that need no data access.
type InfoController struct {
	team *team.Registry
}

// NewInfoController creates a new InfoController
func NewInfoController(registry *team.Registry) *InfoController {
	return &InfoController{team: registry}
}

func (c *InfoController) About(ctx *gin.Context) {
	render(ctx, http.StatusOK, "about.html", "About", "about", dto.TeamPage{Members: c.team.All()})
}

// Member shows one team member. Unknown slugs go back to the about page.
func (c *InfoController) Member(ctx *gin.Context) {
	member, ok := c.team.Lookup(ctx.Param("slug"))
	if !ok {
		redirect(ctx, aboutPath)
		return
	}
	render(ctx, http.StatusOK, "member.html", member.Name, "about", dto.MemberPage{Member: member})
}

func (c *InfoController) PrivacyPolicy(ctx *gin.Context) {
	render(ctx, http.StatusOK, "privacy_policy.html", "Privacy policy", "", nil)
}

func (c *InfoController) WhatsApp(ctx *gin.Context) {
	render(ctx, http.StatusOK, "whatsapp.html", "WhatsApp community", "", nil)
}

func (c *InfoController) TelegramPremium(ctx *gin.Context) {
	render(ctx, http.StatusOK, "telegram_premium.html", "Telegram Premium", "", nil)
}
