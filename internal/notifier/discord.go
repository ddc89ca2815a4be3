package notifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/mental-health-partner-api/internal/config"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
)

type Notifier interface {
	NotifyStorySubmitted(author models.User, story models.SuccessStory) error
	NotifyAchievementsUnlocked(user models.User, achievements []models.Achievement) error
}

// session is the part of *discordgo.Session the notifier uses.
type session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

type DiscordNotifier struct {
	session              session
	moderationChannelID  string
	achievementChannelID string
	guildID              string
	logger               *zap.Logger
}

func NewDiscordNotifier(cfg *config.Config, logger *zap.Logger) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" {
		return nil, errors.New("discord bot token is empty")
	}
	s, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return newDiscordNotifier(s, cfg, logger), nil
}

func newDiscordNotifier(s session, cfg *config.Config, logger *zap.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		session:              s,
		moderationChannelID:  cfg.DiscordModerationChannelID,
		achievementChannelID: cfg.DiscordAchievementChannel,
		guildID:              cfg.DiscordGuildID,
		logger:               logger,
	}
}

// NotifyStorySubmitted asks moderators to review a new success story.
func (n *DiscordNotifier) NotifyStorySubmitted(author models.User, story models.SuccessStory) error {
	if n.moderationChannelID == "" {
		return fmt.Errorf("discord moderation channel ID is empty")
	}

	byline := author.Username
	if story.IsAnonymous {
		byline += " (posting anonymously)"
	}
	message := fmt.Sprintf("📝 **Success story awaiting review**\n**Title:** %s\n**Category:** %s\n**Author:** %s\n**Story ID:** %d",
		story.Title,
		orDash(story.Category),
		byline,
		story.ID,
	)

	if _, err := n.session.ChannelMessageSend(n.moderationChannelID, message); err != nil {
		n.logger.Error("Failed to send discord message", zap.Error(err))
		return err
	}
	return nil
}

// NotifyAchievementsUnlocked announces unlocks for users who linked Discord and grants
// the achievement's Discord role when one is configured.
func (n *DiscordNotifier) NotifyAchievementsUnlocked(user models.User, achievements []models.Achievement) error {
	if len(achievements) == 0 || user.DiscordID == nil {
		return nil
	}

	var errs []error
	titles := make([]string, 0, len(achievements))
	for _, a := range achievements {
		titles = append(titles, "**"+a.Title+"**")
		if a.DiscordRoleID == "" || n.guildID == "" {
			continue
		}
		if err := n.session.GuildMemberRoleAdd(n.guildID, *user.DiscordID, a.DiscordRoleID); err != nil {
			n.logger.Error("Failed to grant discord role",
				zap.Uint("achievement_id", a.ID),
				zap.Error(err))
			errs = append(errs, err)
		}
	}

	if n.achievementChannelID != "" {
		message := fmt.Sprintf("🏆 <@%s> unlocked %s", *user.DiscordID, strings.Join(titles, ", "))
		if _, err := n.session.ChannelMessageSend(n.achievementChannelID, message); err != nil {
			n.logger.Error("Failed to send discord message", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Nop drops every notification. Used when Discord is not configured.
type Nop struct{}

func (Nop) NotifyStorySubmitted(models.User, models.SuccessStory) error { return nil }

func (Nop) NotifyAchievementsUnlocked(models.User, []models.Achievement) error { return nil }
