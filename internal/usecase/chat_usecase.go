package usecase

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"foodie/internal/domain/model"
	"foodie/internal/repository"

	"github.com/rs/zerolog/log"
)

// ルールベースのチャットボット。上から順に最初にマッチしたルールで答える
type ChatUsecase struct {
	foods       repository.FoodRepository
	categories  repository.CategoryRepository
	restaurants repository.RestaurantRepository
	rules       []chatRule
}

type ChatReply struct {
	Reply  string `json:"reply"`
	Intent string `json:"intent"`
}

type chatRule struct {
	intent  string
	pattern *regexp.Regexp
	answer  func(ctx context.Context, msg string) (string, error)
	// DBが使えないときの返答
	fallback string
}

var dishKeyword = regexp.MustCompile(`\b(pizza|burger|biryani|pasta|sushi|chicken|rice|noodles|taco|curry|salad|dessert|sweet|ice cream|dosa|idli|soup|wings|fries|sandwich)\b`)

func NewChatUsecase(
	foods repository.FoodRepository,
	categories repository.CategoryRepository,
	restaurants repository.RestaurantRepository,
) *ChatUsecase {
	u := &ChatUsecase{foods: foods, categories: categories, restaurants: restaurants}
	u.rules = []chatRule{
		{
			intent:  "greeting",
			pattern: regexp.MustCompile(`^(hi|hello|hey|greetings|good morning|good afternoon|good evening|namaste)\b`),
			answer:  static("Hi there! Welcome to Foodie. What would you like to eat today?\n\nYou can ask me about:\n- popular dishes and restaurants\n- food categories\n- prices and delivery time\n- your cart and placing orders"),
		},
		{
			intent:  "help",
			pattern: regexp.MustCompile(`^(help|support|what can you do|how can you help)`),
			answer:  static("I can help you browse the menu, find restaurants, check prices and delivery times, and walk you through ordering.\n\nWhat would you like to explore?"),
		},
		{
			intent:   "popular",
			pattern:  regexp.MustCompile(`(popular|trending|best|recommended|suggest|what.*good|top|favorite)`),
			answer:   u.popular,
			fallback: "We have plenty of great dishes. Would you like to browse a category?",
		},
		{
			intent:   "search",
			pattern:  regexp.MustCompile(`(find|search|looking for|want|need|show me)`),
			answer:   u.search,
			fallback: "I can help you search for food. Try \"find pizza\" or \"show me burgers\".",
		},
		{
			intent:   "menu",
			pattern:  regexp.MustCompile(`(^|\s)(menu|food|items|dishes|categories|what.*available|what.*serve|cuisine)`),
			answer:   u.menu,
			fallback: "We have a wide variety of dishes. What sounds good to you?",
		},
		{
			intent:   "restaurants",
			pattern:  regexp.MustCompile(`(^|\s)(restaurant|restaurants|which.*serve|where.*from|from where)`),
			answer:   u.restaurantList,
			fallback: "We partner with many restaurants. Which cuisine are you in the mood for?",
		},
		{
			intent:   "price",
			pattern:  regexp.MustCompile(`(price|cost|expensive|cheap|budget|how much|pricing|affordable)`),
			answer:   u.priceRange,
			fallback: "Most dishes are reasonably priced. What's your budget?",
		},
		{
			intent:   "delivery",
			pattern:  regexp.MustCompile(`(delivery|deliver|how long|when.*arrive|time.*take|fast|quick)`),
			answer:   u.deliveryTime,
			fallback: "Most orders arrive within 30 minutes.",
		},
		{
			intent:  "cart",
			pattern: regexp.MustCompile(`(cart|remove|delete|empty)`),
			answer:  static("To manage your cart:\n1. Click \"Add to Cart\" on any dish\n2. Open the cart from the header\n3. Change quantities or remove items there\n\nWhen you're ready, click \"Checkout\"."),
		},
		{
			intent:  "order",
			pattern: regexp.MustCompile(`(order|buy|purchase|checkout)`),
			answer:  static("To place an order:\n1. Add dishes to your cart\n2. Review the cart and click \"Checkout\"\n3. Enter your delivery address\n4. Choose a payment method and confirm"),
		},
		{
			intent:  "payment",
			pattern: regexp.MustCompile(`(payment|pay|card|cash|upi|wallet)`),
			answer:  static("We accept cash on delivery, cards, UPI and digital wallets. Choose your method at checkout."),
		},
		{
			intent:  "vegetarian",
			pattern: regexp.MustCompile(`(vegetarian|veg|vegan|plant-based|no meat)`),
			answer:  static("Yes, we have plenty of vegetarian options, including salads, veg pizzas and veg burgers. Want some suggestions?"),
		},
		{
			intent:   "availability",
			pattern:  regexp.MustCompile(`(available|in stock|out of stock|do you have)`),
			answer:   u.availability,
			fallback: "Everything on the menu is available to order.",
		},
		{
			intent:  "thanks",
			pattern: regexp.MustCompile(`(thank|thanks|appreciate)`),
			answer:  static("You're welcome! Enjoy your meal."),
		},
		{
			intent:  "goodbye",
			pattern: regexp.MustCompile(`(bye|goodbye|see you)`),
			answer:  static("Goodbye! Come back anytime."),
		},
	}
	return u
}

func static(s string) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) { return s, nil }
}

const chatDefaultReply = "I'm here to help you order food.\n\nYou can ask me:\n- \"Show me popular dishes\"\n- \"Find pizza\"\n- \"What restaurants do you have?\"\n- \"What's the delivery time?\"\n- \"How do I place an order?\""

// 空メッセージは400
func (u *ChatUsecase) Reply(ctx context.Context, message string) (ChatReply, error) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return ChatReply{}, badRequest("message is required")
	}

	for _, r := range u.rules {
		if !r.pattern.MatchString(msg) {
			continue
		}
		text, err := r.answer(ctx, msg)
		if err != nil {
			log.Warn().Err(err).Str("intent", r.intent).Msg("chat rule failed")
			text = r.fallback
		}
		return ChatReply{Reply: text, Intent: r.intent}, nil
	}
	return ChatReply{Reply: chatDefaultReply, Intent: "fallback"}, nil
}

func formatFoods(header string, foods []model.Food) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for i, f := range foods {
		restaurant := ""
		if f.Restaurant != nil {
			restaurant = f.Restaurant.Name
		}
		fmt.Fprintf(&b, "%d. %s - ₹%d\n   %s (%.1f)\n", i+1, f.Name, f.Price, restaurant, f.Rating)
	}
	return b.String()
}

func (u *ChatUsecase) popular(ctx context.Context, _ string) (string, error) {
	foods, err := u.foods.TopRated(ctx, 5)
	if err != nil {
		return "", err
	}
	if len(foods) == 0 {
		return "We have many great options. Would you like to browse a category?", nil
	}
	return formatFoods("Here are some popular dishes right now:", foods) + "\nWould you like to add any of these to your cart?", nil
}

func (u *ChatUsecase) search(ctx context.Context, msg string) (string, error) {
	kw := dishKeyword.FindString(msg)
	if kw == "" {
		return "What are you craving? Tell me a dish name, for example pizza, burger or biryani.", nil
	}
	foods, _, err := u.foods.List(ctx, repository.FoodListFilter{Search: kw, AvailableOnly: true, Page: 1, Limit: 5})
	if err != nil {
		return "", err
	}
	if len(foods) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find anything for %q right now. Try another dish?", kw), nil
	}
	return formatFoods(fmt.Sprintf("Here's what I found for %q:", kw), foods), nil
}

func (u *ChatUsecase) menu(ctx context.Context, _ string) (string, error) {
	_, count, err := u.foods.List(ctx, repository.FoodListFilter{AvailableOnly: true, Page: 1, Limit: 1})
	if err != nil {
		return "", err
	}
	cats, err := u.categories.List(ctx)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, 8)
	for i, c := range cats {
		if i == 8 {
			break
		}
		names = append(names, c.Name)
	}
	return fmt.Sprintf("We have %d dishes available.\n\nCategories: %s\n\nWhich cuisine are you craving?", count, strings.Join(names, ", ")), nil
}

func (u *ChatUsecase) restaurantList(ctx context.Context, _ string) (string, error) {
	list, err := u.restaurants.List(ctx, true)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "We have %d restaurants.\n\n", len(list))
	for i, r := range list {
		if i == 6 {
			break
		}
		fmt.Fprintf(&b, "%s (%d min, %.1f)\n", r.Name, r.DeliveryTime, r.Rating)
	}
	return b.String(), nil
}

func (u *ChatUsecase) priceRange(ctx context.Context, _ string) (string, error) {
	pr, ok, err := u.foods.AvailablePriceRange(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "No dishes are available right now. Please check back soon.", nil
	}
	return fmt.Sprintf("Prices start from ₹%d and go up to ₹%d. The average dish is ₹%d.\n\nWhat's your budget?",
		int64(math.Round(pr.Min)), int64(math.Round(pr.Max)), int64(math.Round(pr.Avg))), nil
}

func (u *ChatUsecase) deliveryTime(ctx context.Context, _ string) (string, error) {
	avg, err := u.restaurants.AverageDeliveryTime(ctx)
	if err != nil {
		return "", err
	}
	minutes := int64(math.Round(avg))
	if minutes == 0 {
		minutes = 25
	}
	return fmt.Sprintf("Average delivery time is %d minutes. It depends on the restaurant and your location.", minutes), nil
}

func (u *ChatUsecase) availability(ctx context.Context, _ string) (string, error) {
	_, count, err := u.foods.List(ctx, repository.FoodListFilter{AvailableOnly: true, Page: 1, Limit: 1})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("We have %d dishes available right now.", count), nil
}
