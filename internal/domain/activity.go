package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Activity представляет внеклассное занятие с ограничением по количеству мест
type Activity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft возвращает количество свободных мест на занятии
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// HasParticipant проверяет, записан ли участник с указанным email
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// ActivityCollection содержит занятия в том порядке, в котором их вернул сервер.
// Сервер отдает JSON-объект с именами занятий в качестве ключей; Go map
// не сохраняет порядок ключей, поэтому коллекция хранится как слайс.
type ActivityCollection []Activity

// Get находит занятие по имени
func (c ActivityCollection) Get(name string) (*Activity, bool) {
	for i := range c {
		if c[i].Name == name {
			return &c[i], true
		}
	}
	return nil, false
}

// activityPayload это представление занятия на проводе: имя передается
// отдельно, как ключ объекта
type activityPayload struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// UnmarshalJSON декодирует объект вида {"имя": {...}, ...}, сохраняя порядок ключей
func (c *ActivityCollection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	collection := ActivityCollection{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var payload activityPayload
		if err := dec.Decode(&payload); err != nil {
			return fmt.Errorf("decoding activity %q: %w", name, err)
		}

		collection = append(collection, Activity{
			Name:            name,
			Description:     payload.Description,
			Schedule:        payload.Schedule,
			MaxParticipants: payload.MaxParticipants,
			Participants:    payload.Participants,
		})
	}

	// Закрывающая скобка объекта
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = collection
	return nil
}

// MarshalJSON кодирует коллекцию обратно в объект с ключами-именами,
// в исходном порядке
func (c ActivityCollection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		value, err := json.Marshal(activityPayload{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
