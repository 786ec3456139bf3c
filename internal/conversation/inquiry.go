package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fridaybot/backend/internal/models"
	"github.com/fridaybot/backend/internal/types"
)

// inquire answers a question about the user's budgets or spending for the
// current month. The default renderings are deterministic, the generative
// and visual variants are opt-in.
func (s *Service) inquire(ctx context.Context, queue *replyQueue, body string) error {
	now := s.options.Now()
	month := types.MonthOf(now)

	summary, err := queue.user.CategorySummary(s.db, month)
	if err != nil {
		return err
	}

	transactions, err := queue.user.RecentTransactions(s.db, month, models.AllCategories)
	if err != nil {
		return err
	}

	kind, err := s.classifier.Classify(ctx, body, inquiryExamples, inquiryLabels)
	if err != nil {
		log.Warn().Err(err).Msg("inquiry classification failed")
		kind = inquiryBudgets
	}

	if s.options.GenerativeInquiry {
		if err := s.generativeInquiry(ctx, queue, body, summary, transactions, now); err == nil {
			return s.visualInquiry(queue, kind, summary, transactions)
		}
		// Fall through to the deterministic rendering
	}

	var reply string
	if kind == inquiryTransactions {
		reply = transactionReport(summary, transactions)
	} else {
		reply = budgetReport(summary)
	}

	if err := queue.text(reply); err != nil {
		return err
	}

	return s.visualInquiry(queue, kind, summary, transactions)
}

// generativeInquiry answers the question from the full spending table.
func (s *Service) generativeInquiry(ctx context.Context, queue *replyQueue, body string,
	summary models.CategorySummary, transactions []models.Transaction, now time.Time) error {
	table := spendingTable(summary, transactions)

	answer, err := s.generator.Generate(ctx, inquiryPrompt(body, queue.user.Name, s.options.AssistantName, table, now))
	if err != nil {
		log.Warn().Err(err).Msg("inquiry generation failed")
		return err
	}

	return queue.text(answer)
}

// visualInquiry queues a chart as media when visual replies are enabled.
// Chart failures only cost the chart, the text reply has already been
// queued.
func (s *Service) visualInquiry(queue *replyQueue, kind string,
	summary models.CategorySummary, transactions []models.Transaction) error {
	if !s.options.VisualInquiry || s.options.Charts == nil || s.options.MediaBaseURL == "" {
		return nil
	}

	var (
		name string
		err  error
	)

	if kind == inquiryTransactions {
		name, err = s.options.Charts.SpendingTimeline(transactions)
	} else {
		name, err = s.options.Charts.SpendingBreakdown(summary)
	}

	if err != nil {
		log.Warn().Err(err).Msg("chart rendering failed")
		return nil
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(s.options.MediaBaseURL, "/"), name)

	return queue.media(url)
}

// budgetReport renders the per-category budget standing for the month.
func budgetReport(summary models.CategorySummary) string {
	var b strings.Builder

	b.WriteString("Here is where your budget stands this month:\n")

	for _, category := range summary.Categories {
		if !category.Budgeted() {
			fmt.Fprintf(&b, "%s: %s spent (no budget set)\n", category.Name, dollars(category.Spent))
			continue
		}

		fmt.Fprintf(&b, "%s: %s of %s spent, %s remaining (%s)\n",
			category.Name, dollars(category.Spent), dollars(category.Allocated.Decimal),
			dollars(category.Remaining), category.Status)
	}

	fmt.Fprintf(&b, "\nTotal spent: %s\n", dollars(summary.TotalSpent))
	fmt.Fprintf(&b, "Total budget: %s\n", dollars(summary.TotalAllocated))
	fmt.Fprintf(&b, "Remaining: %s (%s)", dollars(summary.TotalRemaining), summary.Status)

	return b.String()
}

// transactionReport renders the month's transaction history.
func transactionReport(summary models.CategorySummary, transactions []models.Transaction) string {
	if len(transactions) == 0 {
		return "You haven't logged any transactions this month."
	}

	var b strings.Builder

	b.WriteString("Here are your transactions this month:\n")

	for _, transaction := range transactions {
		fmt.Fprintf(&b, "%d/%d %s - %s (%s)\n",
			transaction.Date.Month(), transaction.Date.Day(),
			transaction.Title, dollars(transaction.Amount), transaction.Category)
	}

	fmt.Fprintf(&b, "\nTotal spent: %s", dollars(summary.TotalSpent))

	return b.String()
}

// spendingTable renders a plain-text table of the month's budgets and
// transactions for the generative inquiry prompt.
func spendingTable(summary models.CategorySummary, transactions []models.Transaction) string {
	var b strings.Builder

	b.WriteString("Budgets\n------------------------\n")

	for _, category := range summary.Categories {
		fmt.Fprintf(&b, "%s | spent %s | budget %s | status %s\n",
			category.Name, dollars(category.Spent), allocation(category), category.Status)
	}

	fmt.Fprintf(&b, "Total spent: %s | Total budget: %s | Remaining: %s | Status: %s\n",
		dollars(summary.TotalSpent), dollars(summary.TotalAllocated),
		dollars(summary.TotalRemaining), summary.Status)

	b.WriteString("\nTransactions\n------------------------\n")

	for _, transaction := range transactions {
		fmt.Fprintf(&b, "%d/%d/%d | %s | %s | %s\n",
			transaction.Date.Month(), transaction.Date.Day(), transaction.Date.Year(),
			transaction.Title, dollars(transaction.Amount), transaction.Category)
	}

	return b.String()
}
