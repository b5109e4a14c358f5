package services

import (
	"strings"
	"time"
)

// MeetingType describes one of the fixed meeting-purpose categories.
type MeetingType struct {
	Duration    int      `json:"duration"` // minutes
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}

// IntentAnalysis is the result of classifying a conversation.
type IntentAnalysis struct {
	Intent            string  `json:"intent"`
	Confidence        float64 `json:"confidence"`
	SuggestedDuration int     `json:"suggestedDuration"`
	Description       string  `json:"description"`
}

// Slot is one bookable hour in the availability grid.
type Slot struct {
	Datetime  string `json:"datetime"`
	Display   string `json:"display"`
	Timezone  string `json:"timezone"`
	Available bool   `json:"available"`
}

// SchedulingAgent classifies meeting intent and recommends time slots.
// The availability grid is stateless and recomputed per request.
type SchedulingAgent struct {
	meetingTypes map[string]MeetingType
	loc          *time.Location
	now          func() time.Time
}

func NewSchedulingAgent() *SchedulingAgent {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}

	return &SchedulingAgent{
		loc: loc,
		now: time.Now,
		meetingTypes: map[string]MeetingType{
			"technical_discussion": {
				Duration:    45,
				Description: "Technical Discussion & Code Review",
				Topics:      []string{"architecture", "system design", "code review", "tech stack"},
			},
			"collaboration": {
				Duration:    30,
				Description: "Project Collaboration Discussion",
				Topics:      []string{"partnership", "project ideas", "collaboration", "startup"},
			},
			"interview": {
				Duration:    60,
				Description: "Technical Interview & Role Discussion",
				Topics:      []string{"job", "role", "interview", "hiring", "position"},
			},
			"mentoring": {
				Duration:    30,
				Description: "Mentoring & Career Guidance",
				Topics:      []string{"mentoring", "guidance", "learning", "career advice"},
			},
			"general": {
				Duration:    30,
				Description: "General Discussion",
			},
		},
	}
}

// MeetingTypeNames lists the fixed categories.
func (a *SchedulingAgent) MeetingTypeNames() []string {
	names := make([]string, 0, len(a.meetingTypes))
	for name := range a.meetingTypes {
		names = append(names, name)
	}
	return names
}

// MeetingTypeFor returns the category definition, falling back to
// "general" for unknown intents.
func (a *SchedulingAgent) MeetingTypeFor(intent string) MeetingType {
	if mt, ok := a.meetingTypes[intent]; ok {
		return mt
	}
	return a.meetingTypes["general"]
}

// AvailableSlots builds the grid: the next 14 business days with nine
// hourly slots per day (9:00 to 17:00 local time).
func (a *SchedulingAgent) AvailableSlots() []Slot {
	var slots []Slot
	now := a.now().In(a.loc)

	days := 0
	for day := 1; days < 14; day++ {
		date := now.AddDate(0, 0, day)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		days++

		for hour := 9; hour < 18; hour++ {
			slot := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, a.loc)
			slots = append(slots, Slot{
				Datetime:  slot.UTC().Format(time.RFC3339),
				Display:   slot.Format("Mon, Jan 2, 3:04 PM"),
				Timezone:  "Asia/Kolkata",
				Available: true,
			})
		}
	}

	return slots
}

var explicitMeetingPhrases = []string{
	"schedule", "meet", "call", "video call", "zoom", "meeting",
	"discuss in person", "talk live", "chat live", "speak with",
}

// AnalyzeMeetingIntent classifies the conversation into one of the fixed
// categories with a confidence in [0,1]. Explicit meeting requests score
// highest; sustained engagement scores lower.
func (a *SchedulingAgent) AnalyzeMeetingIntent(history []ChatMessage, currentMessage string) IntentAnalysis {
	var parts []string
	for _, msg := range history {
		parts = append(parts, msg.Content)
	}
	parts = append(parts, currentMessage)
	lowerText := strings.ToLower(strings.Join(parts, "\n"))

	hasExplicitRequest := false
	for _, phrase := range explicitMeetingPhrases {
		if strings.Contains(lowerText, phrase) {
			hasExplicitRequest = true
			break
		}
	}

	hasDeepQuestions := false
	userMessages := 0
	for _, msg := range history {
		if msg.Type != "user" {
			continue
		}
		userMessages++
		content := strings.ToLower(msg.Content)
		if len(msg.Content) > 50 || strings.Contains(msg.Content, "?") ||
			strings.Contains(content, "tell me more") ||
			strings.Contains(content, "can you explain") ||
			strings.Contains(content, "how did you") ||
			strings.Contains(content, "what was your experience") {
			hasDeepQuestions = true
		}
	}

	intent := "general"
	confidence := 0.0

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lowerText, w) {
				return true
			}
		}
		return false
	}

	switch {
	case hasExplicitRequest:
		confidence = 0.9
		switch {
		case containsAny("interview", "job", "position", "hire"):
			intent = "interview"
		case containsAny("collaborate", "project", "work together", "startup"):
			intent = "collaboration"
		case containsAny("technical", "code", "architecture", "development"):
			intent = "technical_discussion"
		case containsAny("mentor", "guidance", "advice", "learn"):
			intent = "mentoring"
		}
	case len(history) >= 4 && hasDeepQuestions:
		confidence = 0.6
		switch {
		case containsAny("experience", "work", "company"):
			intent = "collaboration"
		case containsAny("skill", "technology", "project"):
			intent = "technical_discussion"
		}
	case len(history) >= 6:
		confidence = 0.4
	}

	mt := a.MeetingTypeFor(intent)
	return IntentAnalysis{
		Intent:            intent,
		Confidence:        confidence,
		SuggestedDuration: mt.Duration,
		Description:       mt.Description,
	}
}

// DetectUrgency maps keyword presence in the latest message to an
// urgency bucket.
func (a *SchedulingAgent) DetectUrgency(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "urgent") || strings.Contains(lower, "asap"):
		return "urgent"
	case strings.Contains(lower, "soon") || strings.Contains(lower, "this week"):
		return "soon"
	}
	return "normal"
}

// RecommendSlots returns a slice of the grid sized by urgency.
func (a *SchedulingAgent) RecommendSlots(urgency string) []Slot {
	slots := a.AvailableSlots()

	limit := 10
	switch urgency {
	case "urgent":
		limit = 3
	case "soon":
		limit = 6
	}
	if len(slots) < limit {
		limit = len(slots)
	}
	return slots[:limit]
}

// MeetingAgenda returns the canned agenda for a meeting category.
func (a *SchedulingAgent) MeetingAgenda(intent string) []string {
	agendas := map[string][]string{
		"technical_discussion": {
			"Project architecture overview",
			"Code review and best practices",
			"Technology stack discussion",
			"Implementation challenges",
			"Next steps and action items",
		},
		"collaboration": {
			"Project goals and vision alignment",
			"Role and responsibility definition",
			"Timeline and milestone planning",
			"Resource and skill requirements",
			"Collaboration framework setup",
		},
		"interview": {
			"Role requirements and expectations",
			"Technical skills assessment",
			"Project experience deep-dive",
			"Company culture and team fit",
			"Next steps in hiring process",
		},
		"mentoring": {
			"Current challenges and goals",
			"Learning path recommendations",
			"Industry insights and trends",
			"Career guidance and advice",
			"Action plan and follow-up",
		},
	}

	if agenda, ok := agendas[intent]; ok {
		return agenda
	}
	return []string{
		"Introduction and background",
		"Current needs and objectives",
		"Potential collaboration areas",
		"Next steps and follow-up",
	}
}
