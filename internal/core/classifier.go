package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const classificationPrompt = `Classify the following email into ONE of these categories:
- NEEDS_REPLY: Email requires a response from the recipient
- FYI_ONLY: Informational email, no action needed
- MEETING_REQUEST: Email contains a meeting request or scheduling discussion
- TASK_ACTION: Email contains action items or tasks to complete

Email details:
From: %s
Subject: %s
Content: %s

Respond in this exact JSON format:
{"category": "CATEGORY_NAME", "confidence": 0.0-1.0, "reasoning": "brief explanation"}

JSON response:`

// ClassifierService classifies emails through the LLM, degrading to
// keyword heuristics when the call or the response fails
type ClassifierService struct {
	generator   TextGenerator
	logger      *zap.Logger
	maxBodySize int
	maxTokens   int
}

// NewClassifierService creates a new classifier service
func NewClassifierService(generator TextGenerator, maxBodySize int, logger *zap.Logger) *ClassifierService {
	return &ClassifierService{
		generator:   generator,
		logger:      logger,
		maxBodySize: maxBodySize,
		maxTokens:   200,
	}
}

// Classify classifies a single email
func (s *ClassifierService) Classify(ctx context.Context, email *Email) Classification {
	body := truncate(email.BestBody(), s.maxBodySize)
	prompt := fmt.Sprintf(classificationPrompt, email.From, email.Subject, body)

	response, err := s.generator.Generate(ctx, prompt, s.maxTokens, 0.1)
	if err != nil {
		s.logger.Warn("Classification call failed, using fallback",
			zap.String("email_id", email.ID),
			zap.Error(err))
		return FallbackClassification(email)
	}

	return ParseClassificationResponse(response)
}

// ClassifyBatch classifies emails one by one
func (s *ClassifierService) ClassifyBatch(ctx context.Context, emails []*Email) []Classification {
	results := make([]Classification, len(emails))
	for i, email := range emails {
		results[i] = s.Classify(ctx, email)
	}
	return results
}

func truncate(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}
	return text[:maxSize]
}
