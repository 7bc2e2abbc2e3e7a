package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fbarbosa/granavoz/internal/models"
	"github.com/fbarbosa/granavoz/internal/usecase"
)

func typeIndicator(txType models.TransactionType) string {
	switch txType {
	case models.TransactionTypeIncome:
		return "💰"
	case models.TransactionTypeTransfer:
		return "🔁"
	default:
		return "💸"
	}
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// formatPipelineReply builds the single reply sent after a voice message: the
// transcript, what was persisted, and the extraction confidence. Only entities
// listed in result were written, so only those are shown as recorded.
func formatPipelineReply(transcript string, data *models.ExtractedFinancialData, result *usecase.SaveResult) string {
	var sb strings.Builder

	sb.WriteString("📝 *Transcrição*\n")
	sb.WriteString(transcript)
	sb.WriteString("\n")

	if data.IsEmpty() {
		sb.WriteString("\nNão identifiquei dados financeiros nessa mensagem.")
		return sb.String()
	}

	if result.BelowThreshold {
		sb.WriteString("\n⚠️ A confiança da extração ficou baixa demais, então nada foi salvo.")
		sb.WriteString(fmt.Sprintf("\nConfiança: %.0f%%", data.Confidence*100))
		return sb.String()
	}

	if result.Saved() == 0 {
		sb.WriteString("\n⚠️ Identifiquei dados financeiros, mas não consegui salvá-los agora. Tente novamente em instantes.")
		return sb.String()
	}

	if len(result.Transactions) > 0 {
		sb.WriteString("\n*Transações*\n")
		for _, tx := range result.Transactions {
			sb.WriteString(fmt.Sprintf("%s %s — %s (%s)\n",
				typeIndicator(tx.Type), money(tx.Amount), tx.Description, tx.Category))
		}
	}

	if len(result.Accounts) > 0 {
		sb.WriteString("\n*Contas*\n")
		for _, acc := range result.Accounts {
			sb.WriteString(fmt.Sprintf("🏦 %s (%s)", acc.Name, acc.Type))
			if acc.Balance != nil {
				sb.WriteString(" — " + money(*acc.Balance))
			}
			sb.WriteString("\n")
		}
	}

	if len(result.Goals) > 0 {
		sb.WriteString("\n*Metas*\n")
		for _, goal := range result.Goals {
			sb.WriteString(fmt.Sprintf("🎯 %s — %s de %s\n",
				goal.Title, money(goal.CurrentAmount), money(goal.TargetAmount)))
		}
	}

	sb.WriteString(fmt.Sprintf("\nConfiança: %.0f%%", data.Confidence*100))
	return sb.String()
}

func formatSummary(s *usecase.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 *Resumo financeiro* (%s a %s)\n\n",
		s.From.Format("02/01"), s.To.Format("02/01")))
	sb.WriteString(fmt.Sprintf("💰 Receitas: %s\n", money(s.TotalIncome)))
	sb.WriteString(fmt.Sprintf("💸 Despesas: %s\n", money(s.TotalExpenses)))
	sb.WriteString(fmt.Sprintf("🧾 Saldo: %s\n", money(s.NetBalance)))
	sb.WriteString(fmt.Sprintf("🔢 Transações no período: %d\n", s.TransactionCount))

	if s.ActiveAccounts > 0 {
		sb.WriteString(fmt.Sprintf("\n🏦 Contas ativas: %d (saldo total: %s)\n",
			s.ActiveAccounts, money(s.TotalBalance)))
	}

	if s.TotalGoals > 0 {
		sb.WriteString(fmt.Sprintf("\n🎯 Metas: %d (%d ativas, %.0f%% concluídas em média)\n",
			s.TotalGoals, s.ActiveGoals, s.AverageGoalCompletion))
	}

	if len(s.ExpensesByCategory) > 0 {
		sb.WriteString("\n*Despesas por categoria*\n")
		categories := make([]string, 0, len(s.ExpensesByCategory))
		for category := range s.ExpensesByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", category, money(s.ExpensesByCategory[category])))
		}
	}

	return sb.String()
}
