package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akolosov/fincoach/internal/common"
	"github.com/akolosov/fincoach/internal/llm"
	"github.com/akolosov/fincoach/internal/logging"
)

// Bank exports rarely exceed this; anything longer is cut to keep the
// request inside the model's context window.
const maxStatementBytes = 15000

const jsonSystemPrompt = "You are a JSON-only financial API. Output strict JSON. No markdown formatting."

// ExpenseCategory is one slice of categorized spending.
type ExpenseCategory struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Color   string  `json:"color"`
	Details string  `json:"details"`
}

// RiskyTransaction flags an unusual or concerning statement entry.
type RiskyTransaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Reason      string  `json:"reason"`
}

// ExpenseReport is the structured result of a statement analysis.
type ExpenseReport struct {
	Categories    []ExpenseCategory  `json:"categories"`
	TotalSpent    float64            `json:"total_spent"`
	TotalIncome   float64            `json:"total_income"`
	Insights      []string           `json:"insights"`
	RiskySpending []RiskyTransaction `json:"risky_spending"`
}

// BudgetRequest describes the user profile a budget is planned for.
type BudgetRequest struct {
	Income     float64
	FixedCosts float64
	Goals      string
}

// BudgetAllocation is one bucket of the 50/30/20 split.
type BudgetAllocation struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Limit       float64 `json:"limit"`
	Color       string  `json:"color"`
	Description string  `json:"description"`
}

// BudgetPlan is the structured result of budget planning.
type BudgetPlan struct {
	Allocations []BudgetAllocation `json:"allocations"`
	Analysis    string             `json:"analysis"`
	ActionPlan  []string           `json:"action_plan"`
}

// GoalRequest describes a savings goal.
type GoalRequest struct {
	Name   string
	Amount float64
	Years  int
	Risk   string
}

// InvestmentSlice is one component of a suggested portfolio.
type InvestmentSlice struct {
	Type       string  `json:"type"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	Color      string  `json:"color"`
}

// GoalStrategy is the structured result of goal planning.
type GoalStrategy struct {
	MonthlySavingsRequired float64           `json:"monthly_savings_required"`
	EstimatedReturnRate    string            `json:"estimated_return_rate"`
	InvestmentSplit        []InvestmentSlice `json:"investment_split"`
	StrategyLogic          string            `json:"strategy_logic"`
	Recommendations        []string          `json:"recommendations"`
}

// ConceptExample is a worked numerical illustration of a term.
type ConceptExample struct {
	Scenario       string `json:"scenario"`
	InvestedAmount string `json:"invested_amount"`
	FinalValue     string `json:"final_value"`
	Gain           string `json:"gain"`
}

// ConceptExplanation is the structured result of a term explanation.
type ConceptExplanation struct {
	Term       string         `json:"term"`
	Definition string         `json:"definition"`
	Example    ConceptExample `json:"example"`
	RiskLevel  string         `json:"risk_level"`
	RiskColor  string         `json:"risk_color"`
	Takeaways  []string       `json:"takeaways"`
}

// AdvisorService produces structured financial artifacts through the model's
// JSON mode. Unlike the conversation loop it never degrades to a fallback
// reply; callers get a typed error and decide how to surface it.
type AdvisorService struct {
	provider llm.Provider
	logger   logging.Logger
}

func NewAdvisorService(provider llm.Provider, logger logging.Logger) *AdvisorService {
	return &AdvisorService{provider: provider, logger: logger}
}

// AnalyzeExpenses categorizes a CSV bank statement and flags risky spending.
func (s *AdvisorService) AnalyzeExpenses(ctx context.Context, csvData string) (*ExpenseReport, error) {
	if len(csvData) > maxStatementBytes {
		csvData = csvData[:maxStatementBytes]
	}

	prompt := fmt.Sprintf(`You are a financial analyst. Analyze the following bank statement data (CSV format) and provide a structured JSON response.

DATA:
%s

INSTRUCTIONS:
1. Categorize each transaction into one of these standard categories: Food, Transport, Rent/Housing, Utilities, Entertainment, Shopping, Income, Healthcare, Debt, Others.
2. Calculate total spending and total income.
3. Identify 3 key insights or spending habits.
4. Flag any "risky" or unusual spending (e.g. gambling, overdraft fees, very high discretionary spend).

OUTPUT FORMAT (Strict JSON):
{
    "categories": [
        {"name": "Food", "value": 500, "color": "#FF8042", "details": "Eating out 5 times"},
        {"name": "Transport", "value": 200, "color": "#00C49F", "details": "Uber and Gas"}
    ],
    "total_spent": 1200,
    "total_income": 3000,
    "insights": ["High spending on dining out", "Transport costs increased"],
    "risky_spending": [{"date": "2024-01-01", "description": "Unknown", "amount": 500, "reason": "Unrecognized merchant"}]
}`, csvData)

	report := &ExpenseReport{}
	if err := s.generate(ctx, prompt, 0.1, report); err != nil {
		return nil, err
	}
	return report, nil
}

// PlanBudget builds a monthly 50/30/20 budget for the given profile.
func (s *AdvisorService) PlanBudget(ctx context.Context, req *BudgetRequest) (*BudgetPlan, error) {
	prompt := fmt.Sprintf(`You are an expert financial planner. Create a monthly budget plan based on the 50/30/20 rule (Needs/Wants/Savings) for the following user profile.

USER DATA:
- Monthly Income: %.2f
- Fixed Costs (Needs): %.2f
- Financial Goals: %s

INSTRUCTIONS:
1. Calculate the ideal 50/30/20 split based on the income.
2. Compare valid fixed costs against the 50%% "Needs" bucket.
3. Adjust the plan if fixed costs exceed 50%% (reduce wants first).
4. Provide specific, actionable advice to achieve the stated goals.

OUTPUT FORMAT (Strict JSON):
{
    "allocations": [
        {"name": "Needs", "value": 1500, "limit": 1500, "color": "#0088FE", "description": "Rent, Bills, Groceries"},
        {"name": "Wants", "value": 900, "limit": 900, "color": "#FFBB28", "description": "Dining, Entertainment"},
        {"name": "Savings", "value": 600, "limit": 600, "color": "#00C49F", "description": "Investments, Emergency Fund"}
    ],
    "analysis": "Your fixed costs are within the 50%% limit. Great job!",
    "action_plan": [
        "Automate a transfer to savings immediately upon payday.",
        "Review subscription services to optimize 'Wants' spending."
    ]
}`, req.Income, req.FixedCosts, req.Goals)

	plan := &BudgetPlan{}
	if err := s.generate(ctx, prompt, 0.2, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// PlanGoal derives an investment strategy for a savings goal.
func (s *AdvisorService) PlanGoal(ctx context.Context, req *GoalRequest) (*GoalStrategy, error) {
	prompt := fmt.Sprintf(`You are a certified financial planner. Create an investment strategy for a specific user goal.

GOAL DETAILS:
- Goal: %s
- Target Amount: %.2f
- Timeline: %d years
- Risk Tolerance: %s

INSTRUCTIONS:
1. Calculate the estimated monthly contribution required to reach the target (assume reasonable annual returns based on risk: Low=5%%, Med=8%%, High=12%%).
2. Suggest an investment portfolio split (e.g., Equity Mutual Funds vs Debt/FDs vs Gold/Cash).
3. Explain the "Why" behind the split.

OUTPUT FORMAT (Strict JSON):
{
    "monthly_savings_required": 5000,
    "estimated_return_rate": "12%%",
    "investment_split": [
        {"type": "Equity (SIP)", "percentage": 60, "amount": 3000, "color": "#8884d8"},
        {"type": "Debt / FD", "percentage": 30, "amount": 1500, "color": "#00C49F"},
        {"type": "Gold / Cash", "percentage": 10, "amount": 500, "color": "#FFBB28"}
    ],
    "strategy_logic": "Given the 5-year timeline and medium risk, a 60/40 equity-debt split balances growth with stability.",
    "recommendations": [
        "Start a monthly SIP in an Index Fund.",
        "Open a Recurring Deposit for the stable portion."
    ]
}`, req.Name, req.Amount, req.Years, req.Risk)

	strategy := &GoalStrategy{}
	if err := s.generate(ctx, prompt, 0.2, strategy); err != nil {
		return nil, err
	}
	return strategy, nil
}

// ExplainConcept explains an investment term for a beginner.
func (s *AdvisorService) ExplainConcept(ctx context.Context, term string) (*ConceptExplanation, error) {
	prompt := fmt.Sprintf(`You are a friendly financial tutor. Explain the following investment term to a beginner.

TERM: %q

INSTRUCTIONS:
1. Define the term simply (no jargon).
2. Provide a concrete numerical example (e.g., "If you invest 1000...").
3. Assign a Risk Level (Low, Medium, High) and a corresponding color code.
4. List 3 key takeaways.

OUTPUT FORMAT (Strict JSON):
{
    "term": "SIP (Systematic Investment Plan)",
    "definition": "A way to invest a fixed amount regularly (like monthly) in mutual funds, rather than a lump sum.",
    "example": {
        "scenario": "You invest 5000 every month for 10 years at 12%% annual return.",
        "invested_amount": "600,000",
        "final_value": "1,161,700",
        "gain": "561,700"
    },
    "risk_level": "Medium",
    "risk_color": "#F59E0B",
    "takeaways": [
        "Disciplined investing habit.",
        "Reduces impact of market volatility (Cost Averaging).",
        "Great for long-term wealth creation."
    ]
}`, term)

	explanation := &ConceptExplanation{}
	if err := s.generate(ctx, prompt, 0.3, explanation); err != nil {
		return nil, err
	}
	return explanation, nil
}

// generate runs one JSON-mode completion and decodes the output into dst.
func (s *AdvisorService) generate(ctx context.Context, prompt string, temperature float64, dst any) error {
	if s.provider == nil {
		return common.ErrorConfigurationMissing
	}

	raw, err := s.provider.CompleteJSON(ctx, []llm.Message{
		llm.SystemMessage(jsonSystemPrompt),
		llm.UserMessage(prompt),
	}, llm.WithTemperature(temperature))
	if err != nil {
		if errors.Is(err, common.ErrorConfigurationMissing) || errors.Is(err, common.ErrorUpstreamUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Error(ctx, "model returned non-decodable JSON", "error", err)
		return fmt.Errorf("%w: %v", common.ErrorMalformedUpstreamOutput, err)
	}
	return nil
}
