package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/services"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"github.com/openai/openai-go/v3"
	"github.com/rs/zerolog"
)

const assistantSystemPrompt = `You are Himanshu Chaudhary's portfolio assistant. You answer questions about his background, projects, skills, and experience as a software engineer. Be concise, friendly, and professional. If asked about scheduling a meeting, suggest using the meeting scheduler. Do not invent facts that are not in the conversation.`

type AIController struct {
	Cfg *config.Config
	LLM *services.LLM
	Log zerolog.Logger
}

func NewAIController(cfg *config.Config, llm *services.LLM, log zerolog.Logger) *AIController {
	return &AIController{Cfg: cfg, LLM: llm, Log: log}
}

// Chat proxies a portfolio visitor's question to the LLM with the last
// ten turns of history for context.
func (ai *AIController) Chat(c *fiber.Ctx) error {
	var input struct {
		Query       string                 `json:"query"`
		ChatHistory []services.ChatMessage `json:"chatHistory"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if strings.TrimSpace(input.Query) == "" {
		return utils.BadRequest(c, "Query is required")
	}
	if !ai.LLM.Ready() {
		return utils.InternalError(c, "AI service is not configured")
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(assistantSystemPrompt),
	}
	for _, msg := range services.HistoryWindow(input.ChatHistory, 10) {
		if msg.Type == "assistant" {
			messages = append(messages, openai.AssistantMessage(msg.Content))
		} else {
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(input.Query))

	answer, err := ai.LLM.Complete(c.Context(), messages, 500)
	if err != nil {
		ai.Log.Error().Err(err).Msg("chat completion failed")
		return utils.InternalError(c, "AI provider is unavailable")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"response": answer,
		"model":    ai.LLM.Model(),
	})
}

func (ai *AIController) Health(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"service":    "ai-chat",
		"configured": ai.LLM.Ready(),
		"model":      ai.LLM.Model(),
	})
}
