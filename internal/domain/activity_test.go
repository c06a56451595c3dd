package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityCollection_UnmarshalPreservesServerOrder(t *testing.T) {
	// Ключи намеренно не в алфавитном порядке
	payload := `{
		"Programming Class": {"description": "Learn programming", "schedule": "Tuesdays", "max_participants": 20, "participants": ["emma@mergington.edu", "sophia@mergington.edu"]},
		"Chess Club": {"description": "Learn strategies", "schedule": "Fridays", "max_participants": 12, "participants": []},
		"Gym Class": {"description": "Physical education", "schedule": "Mondays", "max_participants": 30, "participants": ["john@mergington.edu"]}
	}`

	var collection ActivityCollection
	require.NoError(t, json.Unmarshal([]byte(payload), &collection))

	require.Len(t, collection, 3)
	assert.Equal(t, "Programming Class", collection[0].Name)
	assert.Equal(t, "Chess Club", collection[1].Name)
	assert.Equal(t, "Gym Class", collection[2].Name)

	assert.Equal(t, "Learn strategies", collection[1].Description)
	assert.Equal(t, "Fridays", collection[1].Schedule)
	assert.Equal(t, 12, collection[1].MaxParticipants)
	assert.Empty(t, collection[1].Participants)
	assert.Equal(t, []string{"emma@mergington.edu", "sophia@mergington.edu"}, collection[0].Participants)
}

func TestActivityCollection_UnmarshalRejectsNonObject(t *testing.T) {
	var collection ActivityCollection

	err := json.Unmarshal([]byte(`["Chess Club"]`), &collection)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"Chess Club": "not an object"}`), &collection)
	assert.Error(t, err)
}

func TestActivityCollection_MarshalKeepsOrderAndShape(t *testing.T) {
	collection := ActivityCollection{
		{Name: "Zeta Club", Description: "z", Schedule: "Mondays", MaxParticipants: 5, Participants: []string{"a@x.com"}},
		{Name: "Alpha Club", Description: "a", Schedule: "Fridays", MaxParticipants: 3},
	}

	data, err := json.Marshal(collection)
	require.NoError(t, err)

	expected := `{"Zeta Club":{"description":"z","schedule":"Mondays","max_participants":5,"participants":["a@x.com"]},` +
		`"Alpha Club":{"description":"a","schedule":"Fridays","max_participants":3,"participants":[]}}`
	assert.JSONEq(t, expected, string(data))
	// Порядок ключей JSONEq не проверяет, сверяем напрямую
	assert.Equal(t, expected, string(data))
}

func TestActivity_SpotsLeft(t *testing.T) {
	activity := Activity{
		Name:            "Chess Club",
		MaxParticipants: 10,
		Participants:    []string{"a@x.com"},
	}

	assert.Equal(t, 9, activity.SpotsLeft())
	assert.True(t, activity.HasParticipant("a@x.com"))
	assert.False(t, activity.HasParticipant("b@x.com"))
}

func TestActivityCollection_Get(t *testing.T) {
	collection := ActivityCollection{
		{Name: "Chess Club"},
		{Name: "Gym Class"},
	}

	activity, ok := collection.Get("Gym Class")
	require.True(t, ok)
	assert.Equal(t, "Gym Class", activity.Name)

	_, ok = collection.Get("Drama Club")
	assert.False(t, ok)
}
