package rename

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jay-Jay-D/luis-json-converter/internal/domain"
)

func TestUpdateUtterances_RewritesMappedReference(t *testing.T) {
	utterances := []domain.Utterance{{
		Text:   "top 5 products",
		Intent: "Ranking",
		Entities: []domain.EntityReference{
			{Entity: "RankingQuantity", StartPos: 4, EndPos: 4},
		},
	}}

	out, updated := UpdateUtterances(utterances, Mapping{"RankingQuantity": "Quantity"})

	require.Len(t, out, 1)
	ref := out[0].Entities[0]
	assert.Equal(t, "Quantity", ref.Entity)
	assert.Equal(t, 4, ref.StartPos)
	assert.Equal(t, 4, ref.EndPos)
	assert.Equal(t, "top 5 products", out[0].Text)
	assert.Equal(t, "Ranking", out[0].Intent)
	assert.Equal(t, 1, updated)

	assert.Equal(t, "RankingQuantity", utterances[0].Entities[0].Entity, "input must not change")
}

func TestUpdateUtterances_Nested(t *testing.T) {
	utterances := []domain.Utterance{{
		Text: "sales between 2020 and 2021",
		Entities: []domain.EntityReference{{
			Entity: "Where", StartPos: 6, EndPos: 26,
			Children: []domain.EntityReference{{
				Entity: "WhereRange", StartPos: 6, EndPos: 26,
				Children: []domain.EntityReference{
					{Entity: "WhereRangeDatetimeV2", StartPos: 14, EndPos: 17},
					{Entity: "Unrelated", StartPos: 23, EndPos: 26},
				},
			}},
		}},
	}}
	mapping := Mapping{"WhereRange": "Range", "WhereRangeDatetimeV2": "DatetimeV2"}

	out, updated := UpdateUtterances(utterances, mapping)

	root := out[0].Entities[0]
	assert.Equal(t, "Where", root.Entity)
	rng := root.Children[0]
	assert.Equal(t, "Range", rng.Entity)
	assert.Equal(t, "DatetimeV2", rng.Children[0].Entity)
	assert.Equal(t, 14, rng.Children[0].StartPos)
	assert.Equal(t, "Unrelated", rng.Children[1].Entity)
	assert.Equal(t, 2, updated)
}

func TestUpdateUtterances_NotTransitive(t *testing.T) {
	utterances := []domain.Utterance{{
		Entities: []domain.EntityReference{{Entity: "A"}, {Entity: "B"}},
	}}

	out, _ := UpdateUtterances(utterances, Mapping{"A": "B", "B": "C"})

	assert.Equal(t, "B", out[0].Entities[0].Entity)
	assert.Equal(t, "C", out[0].Entities[1].Entity)
}

func TestUpdateUtterances_NilAndEmpty(t *testing.T) {
	out, updated := UpdateUtterances(nil, Mapping{"A": "B"})
	assert.Nil(t, out)
	assert.Zero(t, updated)

	out, _ = UpdateUtterances([]domain.Utterance{}, Mapping{"A": "B"})
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out, _ = UpdateUtterances([]domain.Utterance{{Text: "no labels"}}, Mapping{"A": "B"})
	assert.Nil(t, out[0].Entities)
}

func TestUpdateUtterances_PassthroughFields(t *testing.T) {
	doc, err := domain.ParseDocument([]byte(`{"utterances": [
		{"text": "x", "intent": "I", "entities": [
			{"entity": "RankingQuantity", "startPos": 0, "endPos": 0, "role": "amount"}
		], "weight": 2}
	]}`))
	require.NoError(t, err)

	out, _ := UpdateUtterances(doc.Utterances, Mapping{"RankingQuantity": "Quantity"})

	raw, err := json.Marshal(out[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"text": "x", "intent": "I", "entities": [
		{"entity": "Quantity", "startPos": 0, "endPos": 0, "role": "amount"}
	], "weight": 2}`, string(raw))
}
