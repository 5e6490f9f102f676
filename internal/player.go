package internal

import "unicode/utf8"

func (m *Member) ToPlayerEntry() PlayerEntry {
	return PlayerEntry{
		ID:   m.ID,
		Name: m.Name,
	}
}

func (m *Member) Role() Role {
	if m.IsOutsider {
		return RoleImpostor
	}
	return RoleCrewmate
}

// RoleReveal builds the private round payload. The outsider never receives the word.
func (m *Member) RoleReveal(word string) GameStartedData {
	data := GameStartedData{
		Role:       m.Role(),
		WordLength: utf8.RuneCountInString(word),
	}
	if !m.IsOutsider {
		w := word
		data.Word = &w
	}
	return data
}
