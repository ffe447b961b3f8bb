package services

import (
	"context"
	"regexp"

	"charsheet-restful/models"
	"charsheet-restful/repositories"

	"github.com/samber/oops"
)

// ListLimit caps the number of characters returned by List.
const ListLimit = 20

// attributeScore accepts plain scores ("15") and signed modifiers ("+2").
var attributeScore = regexp.MustCompile(`^[+-]?[0-9]{1,3}$`)

// CharacterService creates and lists character sheets.
type CharacterService interface {
	Create(ctx context.Context, input *CharacterInput) (*CharacterView, error)
	List(ctx context.Context) ([]CharacterView, error)
}

type characterService struct {
	repo repositories.CharacterRepository
}

var _ CharacterService = (*characterService)(nil)

// NewCharacterService creates a new CharacterService instance
func NewCharacterService(repo repositories.CharacterRepository) CharacterService {
	return &characterService{repo: repo}
}

// Create stores a new character. Every failure, a taken name included, is
// reported as the same validation error.
func (s *characterService) Create(ctx context.Context, input *CharacterInput) (*CharacterView, error) {
	if !validCharacter(input) {
		return nil, newError("character", KindValidation, MsgInvalidCharacter)
	}

	character := models.Character{
		Name:         input.Name,
		Backstory:    input.Backstory,
		Profession:   input.Profession,
		Race:         input.Race,
		Strength:     input.Strength,
		Dexterity:    input.Dexterity,
		Constitution: input.Constitution,
		Intelligence: input.Intelligence,
		Wisdom:       input.Wisdom,
		Charisma:     input.Charisma,
	}
	if err := s.repo.Create(ctx, &character); err != nil {
		return nil, oops.In("character").
			Code(string(KindValidation)).
			With("name", input.Name).
			With("cause", err.Error()).
			New(MsgInvalidCharacter)
	}

	view := mapCharacterToView(&character)
	return &view, nil
}

// List returns up to ListLimit characters.
func (s *characterService) List(ctx context.Context) ([]CharacterView, error) {
	characters, err := s.repo.FindAll(ctx, ListLimit)
	if err != nil {
		return nil, internalError("character", err, "list characters")
	}

	views := make([]CharacterView, len(characters))
	for i := range characters {
		views[i] = mapCharacterToView(&characters[i])
	}
	return views, nil
}

func validCharacter(input *CharacterInput) bool {
	if input.Name == "" || input.Profession == "" || input.Race == "" {
		return false
	}
	for _, score := range []string{
		input.Strength, input.Dexterity, input.Constitution,
		input.Intelligence, input.Wisdom, input.Charisma,
	} {
		if !attributeScore.MatchString(score) {
			return false
		}
	}
	return true
}
