package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"foodie/internal/domain/model"
	"foodie/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatUsecase_Intents(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, e.db.Model(&model.Food{}).Where("id = ?", e.sushi.ID).Update("rating", 4.9).Error)

	tests := []struct {
		message  string
		intent   string
		contains string
	}{
		{message: "Hello!", intent: "greeting", contains: "Welcome to Foodie"},
		{message: "help", intent: "help", contains: "browse the menu"},
		{message: "what's popular today?", intent: "popular", contains: "1. Salmon Sushi"},
		{message: "find pizza", intent: "search", contains: "Margherita Pizza"},
		{message: "find burger", intent: "search", contains: "couldn't find"},
		{message: "show the menu", intent: "menu", contains: "We have 3 dishes available"},
		{message: "which restaurants are open", intent: "restaurants", contains: "We have 2 restaurants"},
		{message: "how much does it cost", intent: "price", contains: "start from ₹50 and go up to ₹300"},
		{message: "delivery time?", intent: "delivery", contains: "30 minutes"},
		{message: "empty my cart", intent: "cart", contains: "Checkout"},
		{message: "how to checkout", intent: "order", contains: "delivery address"},
		{message: "can I pay by upi", intent: "payment", contains: "UPI"},
		{message: "vegan options", intent: "vegetarian", contains: "vegetarian"},
		{message: "is it in stock", intent: "availability", contains: "3 dishes"},
		{message: "thank you", intent: "thanks", contains: "welcome"},
		{message: "bye", intent: "goodbye", contains: "Goodbye"},
		{message: "qwerty", intent: "fallback", contains: "Find pizza"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			out, err := e.chat.Reply(ctx, tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.intent, out.Intent)
			assert.Contains(t, out.Reply, tt.contains)
		})
	}
}

func TestChatUsecase_EmptyMessage(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.chat.Reply(context.Background(), "   ")
	assertHTTPError(t, err, usecase.ErrValidation, http.StatusBadRequest)
}

// DBが落ちていても定型文で答える
func TestChatUsecase_FallsBackWhenStoreFails(t *testing.T) {
	e := newTestEnv(t)

	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	out, err := e.chat.Reply(context.Background(), "show me popular dishes")
	require.NoError(t, err)
	assert.Equal(t, "popular", out.Intent)
	assert.Equal(t, "We have plenty of great dishes. Would you like to browse a category?", out.Reply)
}
