package services

import "charsheet-restful/models"

// --- Structs for Input/Output ---

type RegisterInput struct {
	Username string `json:"username" description:"Unique login name"`
	Password string `json:"password" description:"At least 8 characters"`
	Nickname string `json:"nickname" description:"Unique display name"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserView is what clients learn about an account. The password hash never
// leaves the service.
type UserView struct {
	ID          uint   `json:"id"`
	Username    string `json:"username,omitempty"`
	Nickname    string `json:"nickname"`
	AccessToken string `json:"accessToken"`
}

type CharacterInput struct {
	Name         string `json:"name"`
	Backstory    string `json:"backstory"`
	Profession   string `json:"profession"`
	Race         string `json:"race"`
	Strength     string `json:"strength"`
	Dexterity    string `json:"dexterity"`
	Constitution string `json:"constitution"`
	Intelligence string `json:"intelligence"`
	Wisdom       string `json:"wisdom"`
	Charisma     string `json:"charisma"`
}

type CharacterView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Backstory    string `json:"backstory"`
	Profession   string `json:"profession"`
	Race         string `json:"race"`
	Strength     string `json:"strength"`
	Dexterity    string `json:"dexterity"`
	Constitution string `json:"constitution"`
	Intelligence string `json:"intelligence"`
	Wisdom       string `json:"wisdom"`
	Charisma     string `json:"charisma"`
}

func mapCharacterToView(c *models.Character) CharacterView {
	return CharacterView{
		ID:           c.ID,
		Name:         c.Name,
		Backstory:    c.Backstory,
		Profession:   c.Profession,
		Race:         c.Race,
		Strength:     c.Strength,
		Dexterity:    c.Dexterity,
		Constitution: c.Constitution,
		Intelligence: c.Intelligence,
		Wisdom:       c.Wisdom,
		Charisma:     c.Charisma,
	}
}
