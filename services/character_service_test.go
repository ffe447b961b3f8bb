package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"charsheet-restful/database/testdb"
	"charsheet-restful/models"
	"charsheet-restful/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCharacterInput(name string) *CharacterInput {
	return &CharacterInput{
		Name:         name,
		Backstory:    "Grew up on the road.",
		Profession:   "Ranger",
		Race:         "Human",
		Strength:     "12",
		Dexterity:    "16",
		Constitution: "13",
		Intelligence: "10",
		Wisdom:       "14",
		Charisma:     "+1",
	}
}

func TestCreateCharacter(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := NewCharacterService(repositories.NewCharacterRepository(testdb.New(t)))

		view, err := svc.Create(ctx, validCharacterInput("Mira"))
		require.NoError(t, err)
		assert.NotZero(t, view.ID)
		assert.Equal(t, "Mira", view.Name)
		assert.Equal(t, "Grew up on the road.", view.Backstory)
		assert.Equal(t, "Ranger", view.Profession)
		assert.Equal(t, "Human", view.Race)
		assert.Equal(t, "16", view.Dexterity)
		assert.Equal(t, "+1", view.Charisma)
	})

	t.Run("Backstory is optional", func(t *testing.T) {
		svc := NewCharacterService(repositories.NewCharacterRepository(testdb.New(t)))

		input := validCharacterInput("Quiet One")
		input.Backstory = ""
		_, err := svc.Create(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("Duplicate name keeps the original", func(t *testing.T) {
		db := testdb.New(t)
		svc := NewCharacterService(repositories.NewCharacterRepository(db))

		_, err := svc.Create(ctx, validCharacterInput("Mira"))
		require.NoError(t, err)

		impostor := validCharacterInput("Mira")
		impostor.Profession = "Bard"
		impostor.Strength = "3"
		_, err = svc.Create(ctx, impostor)
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
		assert.Equal(t, MsgInvalidCharacter, PublicMessage(err))

		var stored []models.Character
		require.NoError(t, db.Where("name = ?", "Mira").Find(&stored).Error)
		require.Len(t, stored, 1)
		assert.Equal(t, "Ranger", stored[0].Profession)
		assert.Equal(t, "12", stored[0].Strength)
	})

	t.Run("Invalid input", func(t *testing.T) {
		svc := NewCharacterService(repositories.NewCharacterRepository(testdb.New(t)))

		tests := []struct {
			name   string
			mutate func(in *CharacterInput)
		}{
			{"missing name", func(in *CharacterInput) { in.Name = "" }},
			{"missing race", func(in *CharacterInput) { in.Race = "" }},
			{"missing profession", func(in *CharacterInput) { in.Profession = "" }},
			{"missing score", func(in *CharacterInput) { in.Wisdom = "" }},
			{"word score", func(in *CharacterInput) { in.Strength = "strong" }},
			{"huge score", func(in *CharacterInput) { in.Dexterity = "1000" }},
			{"double sign", func(in *CharacterInput) { in.Charisma = "++2" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := validCharacterInput("Broken")
				tt.mutate(input)
				_, err := svc.Create(ctx, input)
				assert.Equal(t, KindValidation, KindOf(err))
				assert.Equal(t, MsgInvalidCharacter, PublicMessage(err))
			})
		}
	})

	t.Run("Store failure is reported as invalid character", func(t *testing.T) {
		svc := NewCharacterService(&failingCharacterRepository{err: errors.New("disk full")})

		_, err := svc.Create(ctx, validCharacterInput("Mira"))
		assert.Equal(t, KindValidation, KindOf(err))
		assert.Equal(t, MsgInvalidCharacter, PublicMessage(err))
	})
}

func TestListCharacters(t *testing.T) {
	ctx := context.Background()

	t.Run("Capped at the list limit", func(t *testing.T) {
		svc := NewCharacterService(repositories.NewCharacterRepository(testdb.New(t)))

		for i := 0; i < 25; i++ {
			_, err := svc.Create(ctx, validCharacterInput(fmt.Sprintf("Hero %02d", i)))
			require.NoError(t, err)
		}

		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, ListLimit)
		assert.Equal(t, "Hero 00", list[0].Name)
	})

	t.Run("Empty store", func(t *testing.T) {
		svc := NewCharacterService(repositories.NewCharacterRepository(testdb.New(t)))

		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("Store failure is internal", func(t *testing.T) {
		svc := NewCharacterService(&failingCharacterRepository{err: errors.New("disk full")})

		_, err := svc.List(ctx)
		assert.Equal(t, KindInternal, KindOf(err))
	})
}

type failingCharacterRepository struct {
	err error
}

func (r *failingCharacterRepository) Create(context.Context, *models.Character) error { return r.err }

func (r *failingCharacterRepository) FindAll(context.Context, int) ([]models.Character, error) {
	return nil, r.err
}
