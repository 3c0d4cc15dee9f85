package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "SearchPerformedEvent/1.0.0", generateKeyFromPath("events/search-performed/v1.json"))
	assert.Equal(t, "Seed/2.0.0", generateKeyFromPath("seed/v2.json"))
	assert.Equal(t, "", generateKeyFromPath("a/b/c/d.json"))
}

func TestValidateEvent(t *testing.T) {
	valid := []byte(`{
		"visitor_id": "6f1c2a3e-8b4d-4f5a-9c7e-1d2b3a4c5e6f",
		"query": "area=tokyo",
		"label": "東京都",
		"occurred_at": "2026-10-19T10:00:00Z"
	}`)
	require.NoError(t, ValidateEvent(SearchPerformedEventType, SearchPerformedEventVersion, valid))

	t.Run("unknown version", func(t *testing.T) {
		assert.Error(t, ValidateEvent(SearchPerformedEventType, "9.0.0", valid))
	})

	t.Run("bad uuid", func(t *testing.T) {
		body := []byte(`{"visitor_id":"nope","query":"area=tokyo","label":"x","occurred_at":"2026-10-19T10:00:00Z"}`)
		assert.Error(t, ValidateEvent(SearchPerformedEventType, SearchPerformedEventVersion, body))
	})

	t.Run("empty query", func(t *testing.T) {
		body := []byte(`{"visitor_id":"6f1c2a3e-8b4d-4f5a-9c7e-1d2b3a4c5e6f","query":"","label":"x","occurred_at":"2026-10-19T10:00:00Z"}`)
		assert.Error(t, ValidateEvent(SearchPerformedEventType, SearchPerformedEventVersion, body))
	})

	t.Run("not json", func(t *testing.T) {
		assert.Error(t, ValidateEvent(SearchPerformedEventType, SearchPerformedEventVersion, []byte("{")))
	})
}

func TestValidateSeed(t *testing.T) {
	seed := []byte(`{
		"name": "テストマンション", "areaKey": "tokyo", "prefecture": "東京都", "city": "新宿区",
		"address": "西新宿1-1", "station": "新宿駅まで徒歩5分", "totalFloors": 10, "floor": 3,
		"direction": "南", "price": 12.5, "managementFee": 10000, "depositMonths": 1,
		"keyMoneyMonths": 1, "type": "マンション", "layout": "1LDK", "area": 40.5,
		"buildDate": "2020年3月", "features": ["オートロック"]
	}`)
	assert.NoError(t, ValidateSeed(seed))

	assert.Error(t, ValidateSeed([]byte(`{"name": "欠損"}`)))
	assert.Error(t, ValidateSeed([]byte(`{
		"name": "x", "areaKey": "tokyo", "prefecture": "東京都", "city": "新宿区",
		"address": "a", "station": "s", "totalFloors": 1, "floor": 1, "direction": "南",
		"price": 5, "managementFee": 0, "depositMonths": 0, "keyMoneyMonths": 0,
		"type": "城", "layout": "1K", "area": 20, "buildDate": "2020年1月", "features": []
	}`)))
}
