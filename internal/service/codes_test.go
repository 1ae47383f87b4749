package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/7Pranavv/Evenoo/internal/model"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCode(t *testing.T) {
	t.Run("maps bytes onto the alphabet", func(t *testing.T) {
		code, err := randomCode(bytes.NewReader([]byte{0, 25, 26, 35, 36, 251}), 6)

		require.NoError(t, err)
		assert.Equal(t, "AZ09A9", code)
	})

	t.Run("skips bytes that would bias the draw", func(t *testing.T) {
		code, err := randomCode(bytes.NewReader([]byte{255, 252, 0, 35}), 2)

		require.NoError(t, err)
		assert.Equal(t, "A9", code)
	})

	t.Run("short reader fails", func(t *testing.T) {
		_, err := randomCode(bytes.NewReader([]byte{1, 2}), 6)

		assert.Error(t, err)
	})

	t.Run("only alphabet characters", func(t *testing.T) {
		src := make([]byte, 600)
		for i := range src {
			src[i] = byte(i)
		}
		code, err := randomCode(bytes.NewReader(src), 200)

		require.NoError(t, err)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, c))
		}
	})
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.13, roundMoney(10.125000001))
	assert.Equal(t, 0.3, roundMoney(0.1+0.2))
}

func TestBuildEvent(t *testing.T) {
	t.Run("draft defaults", func(t *testing.T) {
		e, err := buildEvent(model.CreateEventDraft{}, model.EventStatusDraft)

		require.NoError(t, err)
		assert.Equal(t, model.UntitledEventName, e.Name)
		assert.Equal(t, model.EventTypeIndividual, e.EventType)
		assert.Equal(t, model.FeeTypeFree, e.FeeType)
		assert.Nil(t, e.MaxParticipants)
		assert.Nil(t, e.FeeStructure)
	})

	t.Run("parses numbers and dates", func(t *testing.T) {
		d := model.CreateEventDraft{
			Name:              " Robo Wars ",
			EventType:         "team",
			MinTeamSize:       "2",
			MaxTeamSize:       "5",
			MaxParticipants:   "120",
			FeeType:           "paid",
			FeeStructure:      "per_person_with_cap",
			FeePerPerson:      "150.5",
			TeamFeeCap:        "500",
			RegistrationStart: "2026-04-01",
			EventStart:        "2026-04-10T09:00",
			EventEnd:          "2026-04-10T18:00:00Z",
		}

		e, err := buildEvent(d, model.EventStatusPendingApproval)

		require.NoError(t, err)
		assert.Equal(t, "Robo Wars", e.Name)
		assert.Equal(t, 2, e.MinTeamSize)
		assert.Equal(t, 5, e.MaxTeamSize)
		require.NotNil(t, e.MaxParticipants)
		assert.Equal(t, 120, *e.MaxParticipants)
		assert.Equal(t, 150.5, e.FeePerPerson)
		require.NotNil(t, e.FeeStructure)
		assert.Equal(t, model.FeeStructurePerPersonWithCap, *e.FeeStructure)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *e.RegistrationStart)
		assert.Equal(t, time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC), *e.EventStart)
		assert.Equal(t, time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC), *e.EventEnd)
	})

	t.Run("bad number", func(t *testing.T) {
		_, err := buildEvent(model.CreateEventDraft{MaxParticipants: "lots"}, model.EventStatusDraft)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "max_participants", vErr.Field)
	})

	t.Run("first bad field wins", func(t *testing.T) {
		_, err := buildEvent(model.CreateEventDraft{EventStart: "next week", FeePerPerson: "ten"}, model.EventStatusDraft)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "event_start", vErr.Field)
	})
}
