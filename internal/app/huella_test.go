package app

import (
	"context"
	"testing"

	"github.com/pscheid92/huella/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHuella_ScaleDeltas(t *testing.T) {
	svc, _, _ := newTestService(t)
	pre := validAnswers()
	post := validAnswers()
	post.Society = 5
	post.Education = 2

	h := svc.BuildHuella(context.Background(), pre, post)

	require.Len(t, h.Scales, len(domain.ScaleQuestions))
	for i, q := range domain.ScaleQuestions {
		assert.Equal(t, q, h.Scales[i].Question)
	}
	assert.Equal(t, domain.ScaleChange{Question: domain.QuestionSociety, Before: 3, After: 5, Change: 2}, h.Scales[0])
	assert.Equal(t, -3, h.Scales[3].Change)
	assert.Equal(t, 0, h.Scales[4].Change)
	assert.Equal(t, "curiosidad", h.EmotionPre)
	assert.Equal(t, "curiosidad", h.EmotionPost)
}

func TestBuildHuella_ComparesBothTexts(t *testing.T) {
	svc, _, a := newTestService(t)
	pre := validAnswers()
	post := validAnswers()
	pre.HopeText, post.HopeText = "esperanza antes", "esperanza despues"
	pre.WorryText, post.WorryText = "miedo antes", "miedo despues"
	a.scores = map[string]float64{
		"esperanza antes":   0.1,
		"esperanza despues": 0.6,
		"miedo antes":       -0.2,
		"miedo despues":     -0.5,
	}

	h := svc.BuildHuella(context.Background(), pre, post)

	require.NotNil(t, h.Hope)
	assert.InDelta(t, 0.5, h.Hope.Change, 1e-9)
	assert.True(t, h.Hope.Improved)

	require.NotNil(t, h.Worry)
	assert.InDelta(t, -0.3, h.Worry.Change, 1e-9)
	assert.False(t, h.Worry.Improved)
}

func TestBuildHuella_SkipsUnansweredTexts(t *testing.T) {
	svc, _, a := newTestService(t)
	pre := validAnswers()
	post := validAnswers()
	post.HopeText = "  "
	post.WorryText = "Ya no me preocupa tanto"

	h := svc.BuildHuella(context.Background(), pre, post)

	assert.Nil(t, h.Hope)
	assert.NotNil(t, h.Worry)
	assert.Equal(t, int32(2), a.calls.Load())
}
