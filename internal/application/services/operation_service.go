package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nexahub/nexahub-backend/internal/core/domain/operation"
	"github.com/nexahub/nexahub-backend/internal/core/ports"
)

// Prompt templates per operation type. Structured data is appended as
// pretty-printed JSON so the prompt is deterministic for a given input.
const (
	resumePromptTemplate  = "Generate a professional resume based on the following information. Format it nicely with sections for Education, Experience, and Skills. Make it concise and impactful:\n%s"
	studyPromptTemplate   = "Create comprehensive study materials for the following topic. Include key concepts, examples, and explanations. Make it easy to understand and well-structured:\n%s"
	quizPromptTemplate    = "Generate a quiz with questions and answers based on this study material. Include multiple choice questions with 4 options each. Make the questions challenging but fair:\n%s"
	enhancePromptTemplate = "Enhance and improve the following text while maintaining its meaning. Make it more professional, engaging, and well-written:\n%s"
	rewritePromptTemplate = "Rewrite the following text in a different style, making it clear and engaging:\n%s"
)

const defaultTemperature = 0.7

// requestBuilder builds a provider request from a normalized payload, one
// per operation type.
type requestBuilder func(p operation.Payload) (*operation.ProviderRequest, error)

type OperationService struct {
	provider ports.ProviderClient
	logger   *logrus.Logger
	builders map[operation.Type]requestBuilder
}

func NewOperationService(provider ports.ProviderClient, logger *logrus.Logger) ports.OperationService {
	return &OperationService{
		provider: provider,
		logger:   logger,
		builders: map[operation.Type]requestBuilder{
			operation.TypeSummarize:      buildSummarizeRequest,
			operation.TypeTranslate:      buildTranslateRequest,
			operation.TypeGenerateResume: generateBuilder(resumePromptTemplate, 1000),
			operation.TypeGenerateStudy:  generateBuilder(studyPromptTemplate, 1500),
			operation.TypeGenerateQuiz:   generateBuilder(quizPromptTemplate, 1000),
			operation.TypeEnhanceText:    buildEnhanceRequest,
			operation.TypeChat:           buildChatRequest,
		},
	}
}

// BuildRequest validates the operation input and builds the downstream
// provider request. No I/O happens here; validation failures are rejected
// before any network call.
func (s *OperationService) BuildRequest(req *operation.Request) (*operation.ProviderRequest, error) {
	builder, ok := s.builders[req.Type]
	if !ok {
		return nil, &operation.ValidationError{Field: "type", Reason: fmt.Sprintf("unsupported operation type %q", req.Type)}
	}
	return builder(req.Payload)
}

// Dispatch builds the provider request and executes it, single attempt.
func (s *OperationService) Dispatch(ctx context.Context, req *operation.Request) (*operation.Result, error) {
	providerReq, err := s.BuildRequest(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"operation": req.Type,
		"endpoint":  providerReq.Endpoint,
	}).Debug("dispatching text operation")

	return s.provider.Send(ctx, providerReq)
}

func buildSummarizeRequest(p operation.Payload) (*operation.ProviderRequest, error) {
	if strings.TrimSpace(p.Text) == "" {
		return nil, &operation.ValidationError{Field: "text", Reason: "text is required"}
	}
	return &operation.ProviderRequest{
		Endpoint: operation.EndpointSummarization,
		Prompt:   p.Text,
	}, nil
}

func buildTranslateRequest(p operation.Payload) (*operation.ProviderRequest, error) {
	if strings.TrimSpace(p.Text) == "" {
		return nil, &operation.ValidationError{Field: "text", Reason: "text is required"}
	}
	if strings.TrimSpace(p.TargetLanguage) == "" {
		return nil, &operation.ValidationError{Field: "targetLanguage", Reason: "target language is required"}
	}
	return &operation.ProviderRequest{
		Endpoint: operation.EndpointTranslation,
		Prompt:   p.Text,
		Params:   operation.Params{TargetLanguage: p.TargetLanguage},
	}, nil
}

// generateBuilder returns the builder for one of the structured generation
// types, differing only in prompt template and output length budget.
func generateBuilder(template string, maxLength int) requestBuilder {
	return func(p operation.Payload) (*operation.ProviderRequest, error) {
		if len(p.Data) == 0 {
			return nil, &operation.ValidationError{Field: "data", Reason: "data is required"}
		}
		serialized, err := json.MarshalIndent(p.Data, "", "  ")
		if err != nil {
			return nil, &operation.ValidationError{Field: "data", Reason: "data is not serializable"}
		}
		return &operation.ProviderRequest{
			Endpoint: operation.EndpointTextGenerator,
			Prompt:   fmt.Sprintf(template, serialized),
			Params:   operation.Params{MaxLength: maxLength, Temperature: defaultTemperature},
		}, nil
	}
}

func buildEnhanceRequest(p operation.Payload) (*operation.ProviderRequest, error) {
	if strings.TrimSpace(p.Text) == "" {
		return nil, &operation.ValidationError{Field: "text", Reason: "text is required"}
	}
	template := enhancePromptTemplate
	if p.Style == operation.StyleRewrite {
		template = rewritePromptTemplate
	}
	return &operation.ProviderRequest{
		Endpoint: operation.EndpointTextGenerator,
		Prompt:   fmt.Sprintf(template, p.Text),
		Params:   operation.Params{MaxLength: 500, Temperature: defaultTemperature},
	}, nil
}

func buildChatRequest(p operation.Payload) (*operation.ProviderRequest, error) {
	if strings.TrimSpace(p.Message) == "" {
		return nil, &operation.ValidationError{Field: "message", Reason: "message is required"}
	}
	// History is accepted but not folded into the prompt; see
	// operation.Payload.
	return &operation.ProviderRequest{
		Endpoint: operation.EndpointTextGenerator,
		Prompt:   p.Message,
	}, nil
}
