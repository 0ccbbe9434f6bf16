package app

import (
	"context"
	"strings"

	"github.com/pscheid92/huella/internal/domain"
	"golang.org/x/sync/errgroup"
)

// BuildHuella summarises how a participant's answers moved between the two rounds.
func (s *Service) BuildHuella(ctx context.Context, pre, post domain.SurveyAnswers) domain.Huella {
	h := domain.Huella{
		Scales:      make([]domain.ScaleChange, 0, len(domain.ScaleQuestions)),
		EmotionPre:  pre.Emotion,
		EmotionPost: post.Emotion,
	}

	for _, q := range domain.ScaleQuestions {
		before, after := pre.Scale(q), post.Scale(q)
		h.Scales = append(h.Scales, domain.ScaleChange{
			Question: q,
			Before:   before,
			After:    after,
			Change:   after - before,
		})
	}

	var g errgroup.Group
	g.Go(func() error {
		h.Hope = s.compareIfAnswered(ctx, pre.HopeText, post.HopeText)
		return nil
	})
	g.Go(func() error {
		h.Worry = s.compareIfAnswered(ctx, pre.WorryText, post.WorryText)
		return nil
	})
	_ = g.Wait()

	return h
}

func (s *Service) compareIfAnswered(ctx context.Context, before, after string) *domain.Comparison {
	if strings.TrimSpace(before) == "" || strings.TrimSpace(after) == "" {
		return nil
	}
	cmp := s.Compare(ctx, before, after)
	return &cmp
}
