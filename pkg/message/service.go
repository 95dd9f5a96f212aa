package message

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	FallbackGreeting   = "Have a wonderful day! ✨"
	FallbackMotivation = "Good morning! Time to rise and shine! ☀️"

	DefaultTimeout  = 10 * time.Second
	DefaultLanguage = "English"
)

// Service produces greeting and wake-up texts. It never fails: any error
// or empty answer yields the fixed fallback text.
type Service struct {
	Source   Source // nil always falls back
	Timeout  time.Duration
	Language string
}

// NewService creates a service with default timeout and language
func NewService(source Source) *Service {
	return &Service{
		Source:   source,
		Timeout:  DefaultTimeout,
		Language: DefaultLanguage,
	}
}

// Greeting returns a short friendly greeting for the given time of day
func (s *Service) Greeting(ctx context.Context, timeOfDay string) string {
	prompt := fmt.Sprintf("Generate a super cute, short, and motivational greeting for a user. "+
		"The time is currently %s. Use emojis and be very friendly. Keep it under 2 sentences. "+
		"Include a tiny bit of encouragement. Write it in %s.", timeOfDay, s.language())
	return s.generate(ctx, prompt, FallbackGreeting)
}

// Motivation returns a short wake-up message for a ringing alarm
func (s *Service) Motivation(ctx context.Context, label string) string {
	prompt := fmt.Sprintf("The user's alarm for %q is ringing. Write a very cute, energetic, "+
		"and slightly funny wake-up message in %s. Make it feel like a supportive best friend. "+
		"Max 15 words.", label, s.language())
	return s.generate(ctx, prompt, FallbackMotivation)
}

func (s *Service) generate(ctx context.Context, prompt, fallback string) string {
	if s == nil || s.Source == nil {
		return fallback
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	text, err := s.Source.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[MESSAGE] Using fallback text: %v", err)
		return fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	return text
}

func (s *Service) language() string {
	if strings.TrimSpace(s.Language) == "" {
		return DefaultLanguage
	}
	return s.Language
}
