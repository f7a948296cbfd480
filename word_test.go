package wordsaver_test

import (
	"testing"
	"time"

	"github.com/fwojciec/wordsaver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSavedTextItem(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	content := wordsaver.SavedTextContent{Before: "The", Selected: "dog", After: "ran fast."}

	item := wordsaver.NewSavedTextItem("id-1", content, now)

	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, content, item.Content)
	assert.Equal(t, now.UnixMilli(), item.Timestamp)
	assert.Equal(t, "...The **dog** ran fast....", item.FullText)
	assert.True(t, item.CapturedAt().Equal(now))
	require.NoError(t, item.Validate())
}

func TestSavedTextItem_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *wordsaver.SavedTextItem {
		return &wordsaver.SavedTextItem{
			ID:        "id-1",
			Content:   wordsaver.SavedTextContent{Selected: "dog"},
			Timestamp: 1700000000000,
		}
	}

	tests := []struct {
		name   string
		modify func(*wordsaver.SavedTextItem)
	}{
		{"missing id", func(i *wordsaver.SavedTextItem) { i.ID = "" }},
		{"missing selection", func(i *wordsaver.SavedTextItem) { i.Content.Selected = "" }},
		{"missing timestamp", func(i *wordsaver.SavedTextItem) { i.Timestamp = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := valid()
			tt.modify(item)
			assert.Equal(t, wordsaver.EINVALID, wordsaver.ErrorCode(item.Validate()))
		})
	}

	t.Run("empty before and after are allowed", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid().Validate())
	})
}
