// Package telegram provides a client for reporting forecast results via
// the Telegram Bot API. After a run it sends the most diagnostic
// indicators — those whose likelihood ratio sits farthest from 1 in either
// direction — as a MarkdownV2-formatted message.
//
// Delivery uses bounded retries; the computation itself is already
// finished and written by the time a notification goes out, so a failed
// send never affects the output.
package telegram

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/d-maltsev/bayescope/internal/models"
)

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendTopIndicators sends the topK most diagnostic indicators from a run.
func (c *Client) SendTopIndicators(results []models.RatioResult, topK int) error {
	top := rankByDiagnosticity(results, topK)
	msg := tgbotapi.NewMessage(c.chatID, formatMessage(top))
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// rankByDiagnosticity orders results by |ln k| descending, so ratios far
// above and far below 1 both rank high, and returns the top k. Ties keep
// catalog order (the sort is stable).
func rankByDiagnosticity(results []models.RatioResult, k int) []models.RatioResult {
	ranked := make([]models.RatioResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		return diagnosticity(ranked[i].KRatio) > diagnosticity(ranked[j].KRatio)
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// diagnosticity is the distance of a ratio from neutral on the log scale.
// Ratios are floored away from zero so a degenerate k=0 ranks as extreme
// rather than producing -Inf.
func diagnosticity(kRatio float64) float64 {
	return math.Abs(math.Log(math.Max(kRatio, 1e-9)))
}

// formatMessage formats ranked results into a Telegram message
func formatMessage(results []models.RatioResult) string {
	message := "📊 *Indicator Likelihood Ratios*\n\n"

	if len(results) == 0 {
		return message + "No indicators in catalog\\."
	}

	for i, r := range results {
		directionEmoji := "🔼"
		if r.KRatio < 1.0 {
			directionEmoji = "🔽"
		}

		name := r.Description
		if name == "" {
			name = r.IndicatorID
		}

		message += fmt.Sprintf(
			"%d\\. %s *%s*\n    k \\= %s \\(P\\|H \\= %s, P\\|\\~H \\= %s\\)\n",
			i+1,
			directionEmoji,
			escapeMarkdownV2(name),
			escapeMarkdownV2(formatRatio(r.KRatio)),
			escapeMarkdownV2(formatRatio(r.PGivenH)),
			escapeMarkdownV2(formatRatio(r.PGivenNotH)),
		)
	}
	return message
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
