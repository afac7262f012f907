package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/logger"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/config"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// AnalysisService runs the LLM-assisted governance step on a submitted
// initiative: it rates mission alignment and risk and extracts RAID lists.
// The model's narrative output is stored opaquely; the only validation is
// that the two ratings land inside their allowed enums.
type AnalysisService struct {
	db     *gorm.DB
	config *config.AIConfig
}

func NewAnalysisService(db *gorm.DB, cfg *config.AIConfig) *AnalysisService {
	return &AnalysisService{db: db, config: cfg}
}

// analysisResult is the JSON shape the model is asked to produce.
type analysisResult struct {
	MissionAlignment string   `json:"mission_alignment"`
	RiskLevel        string   `json:"risk_level"`
	Summary          string   `json:"summary"`
	MissionSupports  []string `json:"mission_supports"`
	Risks            []string `json:"risks"`
	Assumptions      []string `json:"assumptions"`
	Issues           []string `json:"issues"`
	Dependencies     []string `json:"dependencies"`
}

var validRiskLevels = map[string]bool{"low": true, "medium": true, "high": true}
var validAlignments = map[string]bool{"high": true, "medium": true, "low": true}

// ProcessAnalysisTask is the task-queue processor. Governance fields are
// stamped once: a task for an already-analyzed initiative is a no-op so a
// redelivered queue message cannot overwrite an earlier run.
func (s *AnalysisService) ProcessAnalysisTask(ctx context.Context, task *AnalysisTask) error {
	logger.Info().Str("task_id", task.TaskID).Uint("initiative_id", task.InitiativeID).Msg("processing analysis task")

	var initiative models.Initiative
	if err := s.db.First(&initiative, task.InitiativeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleted between submit and processing; nothing to do.
			return nil
		}
		return err
	}

	if initiative.AnalyzedAt != nil {
		logger.Info().Uint("initiative_id", initiative.ID).Msg("initiative already analyzed, skipping")
		return nil
	}

	prompt := s.buildAnalysisPrompt(&initiative)

	content, err := s.callLLM(ctx, prompt)
	if err != nil {
		logger.Error().Err(err).Uint("initiative_id", initiative.ID).Msg("analysis LLM call failed")
		return err
	}

	result, err := parseAnalysisResponse(content)
	if err != nil {
		logger.Error().Err(err).Uint("initiative_id", initiative.ID).Msg("analysis response rejected")
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"mission_alignment": result.MissionAlignment,
		"risk_level":        result.RiskLevel,
		"analysis_summary":  result.Summary,
		"mission_supports":  models.StringList(result.MissionSupports),
		"risks":             models.StringList(result.Risks),
		"assumptions":       models.StringList(result.Assumptions),
		"issues":            models.StringList(result.Issues),
		"dependencies":      models.StringList(result.Dependencies),
		"analyzed_at":       now,
	}
	if err := s.db.Model(&models.Initiative{}).Where("id = ?", initiative.ID).Updates(updates).Error; err != nil {
		return err
	}

	logger.Info().
		Uint("initiative_id", initiative.ID).
		Str("mission_alignment", result.MissionAlignment).
		Str("risk_level", result.RiskLevel).
		Msg("analysis completed")
	return nil
}

func (s *AnalysisService) buildAnalysisPrompt(initiative *models.Initiative) string {
	var b strings.Builder
	b.WriteString("You are a governance analyst reviewing an AI-initiative proposal.\n")
	b.WriteString("Rate its mission alignment and overall risk, then list RAID items.\n\n")
	b.WriteString("Proposal:\n")
	fmt.Fprintf(&b, "Title: %s\n", initiative.Title)
	fmt.Fprintf(&b, "Problem: %s\n", initiative.ProblemStatement)
	fmt.Fprintf(&b, "Approach: %s\n", initiative.Approach)
	fmt.Fprintf(&b, "Expected outcome: %s\n", initiative.ExpectedOutcome)
	fmt.Fprintf(&b, "Stakeholders: %s\n\n", initiative.Stakeholders)
	b.WriteString("Respond with a single JSON object and nothing else:\n")
	b.WriteString(`{
  "mission_alignment": "high|medium|low",
  "risk_level": "low|medium|high",
  "summary": "two or three sentences",
  "mission_supports": ["..."],
  "risks": ["..."],
  "assumptions": ["..."],
  "issues": ["..."],
  "dependencies": ["..."]
}`)
	return b.String()
}

// parseAnalysisResponse extracts the JSON object from the model output and
// checks the two rating enums. Everything else passes through untouched.
func parseAnalysisResponse(content string) (*analysisResult, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in analysis response")
	}

	var result analysisResult
	if err := json.Unmarshal([]byte(content[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}

	result.MissionAlignment = strings.ToLower(strings.TrimSpace(result.MissionAlignment))
	result.RiskLevel = strings.ToLower(strings.TrimSpace(result.RiskLevel))

	if !validAlignments[result.MissionAlignment] {
		return nil, fmt.Errorf("invalid mission_alignment %q", result.MissionAlignment)
	}
	if !validRiskLevels[result.RiskLevel] {
		return nil, fmt.Errorf("invalid risk_level %q", result.RiskLevel)
	}

	return &result, nil
}

// callLLM dispatches to the provider-specific call based on config.
func (s *AnalysisService) callLLM(ctx context.Context, prompt string) (string, error) {
	logger.Info().Str("provider", s.config.Provider).Str("model", s.config.Model).Msg("calling analysis LLM")

	switch s.config.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, prompt)
	case "ollama":
		return s.callOllama(ctx, prompt)
	case "gemini":
		return s.callGemini(ctx, prompt)
	case "azure":
		return s.callAzure(ctx, prompt)
	default:
		// openai and other OpenAI-compatible services
		return s.callOpenAI(ctx, prompt)
	}
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (s *AnalysisService) callOpenAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(s.config.APIKey)
	if s.config.BaseURL != "" {
		clientConfig.BaseURL = s.config.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.3)
	if s.config.Temperature > 0 {
		temperature = float32(s.config.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAzure handles Azure OpenAI; the Model field is the deployment name.
func (s *AnalysisService) callAzure(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultAzureConfig(s.config.APIKey, s.config.BaseURL)
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.3)
	if s.config.Temperature > 0 {
		temperature = float32(s.config.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("Azure OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Azure OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAnthropic handles Anthropic Claude API using the native SDK
func (s *AnalysisService) callAnthropic(ctx context.Context, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.config.APIKey),
	)

	maxTokens := int64(s.config.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	model := s.config.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	return content, nil
}

// callOllama handles Ollama API using the native SDK
func (s *AnalysisService) callOllama(ctx context.Context, prompt string) (string, error) {
	baseURL := s.config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := s.config.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Options: map[string]interface{}{
			"temperature": s.config.Temperature,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}

	return content.String(), nil
}

// callGemini handles Google Gemini API using the native SDK
func (s *AnalysisService) callGemini(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.config.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := s.config.Model
	if model == "" {
		model = "gemini-3.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return resp.Text(), nil
}
