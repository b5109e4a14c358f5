package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/services"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"github.com/rs/zerolog"
)

// suggestionThreshold is the minimum intent confidence before the
// assistant proposes a meeting.
const suggestionThreshold = 0.2

type SchedulingController struct {
	Cfg   *config.Config
	Agent *services.SchedulingAgent
	Log   zerolog.Logger
}

func NewSchedulingController(cfg *config.Config, agent *services.SchedulingAgent, log zerolog.Logger) *SchedulingController {
	return &SchedulingController{Cfg: cfg, Agent: agent, Log: log}
}

// SuggestMeeting analyzes the conversation and, when the intent is
// strong enough, proposes slots and an agenda.
func (sc *SchedulingController) SuggestMeeting(c *fiber.Ctx) error {
	var input struct {
		ChatHistory    []services.ChatMessage `json:"chatHistory"`
		CurrentMessage string                 `json:"currentMessage"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if strings.TrimSpace(input.CurrentMessage) == "" {
		return utils.BadRequest(c, "currentMessage is required")
	}

	analysis := sc.Agent.AnalyzeMeetingIntent(input.ChatHistory, input.CurrentMessage)
	if analysis.Confidence <= suggestionThreshold {
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"shouldSuggest": false,
			"analysis":      analysis,
		})
	}

	urgency := sc.Agent.DetectUrgency(input.CurrentMessage)
	slots := sc.Agent.RecommendSlots(urgency)
	if len(slots) > 5 {
		slots = slots[:5]
	}

	autoMessage := fmt.Sprintf(
		"It sounds like a %s would be valuable here. I have a few openings coming up; would any of these times work for you?",
		strings.ToLower(analysis.Description))

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"shouldSuggest":  true,
		"analysis":       analysis,
		"urgency":        urgency,
		"suggestedSlots": slots,
		"agenda":         sc.Agent.MeetingAgenda(analysis.Intent),
		"autoMessage":    autoMessage,
	})
}

// ScheduleMeeting books a slot. The meeting id is generated here; the
// confirmation email is only logged, no transport is wired.
func (sc *SchedulingController) ScheduleMeeting(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Slot        string `json:"slot"`
		MeetingType string `json:"meetingType"`
		Notes       string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" || input.Email == "" || input.Slot == "" || input.MeetingType == "" {
		return utils.BadRequest(c, "Name, email, slot and meetingType are required")
	}

	valid := false
	for _, name := range sc.Agent.MeetingTypeNames() {
		if name == input.MeetingType {
			valid = true
			break
		}
	}
	if !valid {
		return utils.BadRequest(c, "Unknown meeting type")
	}

	meetingType := sc.Agent.MeetingTypeFor(input.MeetingType)
	meetingID := "meet_" + uuid.NewString()

	calendarEvent := fiber.Map{
		"id":          meetingID,
		"summary":     meetingType.Description,
		"start":       input.Slot,
		"duration":    meetingType.Duration,
		"attendees":   []string{input.Email},
		"location":    sc.Cfg.MeetingPlatformURL,
		"description": input.Notes,
	}

	sc.Log.Info().
		Str("meeting_id", meetingID).
		Str("email", input.Email).
		Str("slot", input.Slot).
		Str("type", input.MeetingType).
		Msg("meeting scheduled, confirmation email pending dispatch")

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"meetingId":     meetingID,
		"meetingType":   input.MeetingType,
		"duration":      meetingType.Duration,
		"slot":          input.Slot,
		"calendarEvent": calendarEvent,
		"agenda":        sc.Agent.MeetingAgenda(input.MeetingType),
	})
}

func (sc *SchedulingController) GetAvailableSlots(c *fiber.Ctx) error {
	slots := sc.Agent.AvailableSlots()
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"slots":    slots,
		"timezone": "Asia/Kolkata",
		"count":    len(slots),
	})
}

func (sc *SchedulingController) Health(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"service":      "scheduling",
		"meetingTypes": sc.Agent.MeetingTypeNames(),
	})
}
