package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Chat enters the conversational loop. Each line is sent as one turn; an
// empty line leaves the loop.
func (a *App) Chat(ctx context.Context) error {
	fmt.Println("Chat with your financial coach (empty line to leave)")

	for {
		line, err := GetSimpleText(a.reader, "", os.Stdout)
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}

		reply, err := a.api.Converse(ctx, line)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Println(reply)
	}
}

// History prints the stored transcript.
func (a *App) History(ctx context.Context) error {
	msgs, err := a.api.History(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if len(msgs) == 0 {
		fmt.Println("No conversation yet")
		return nil
	}
	for _, m := range msgs {
		fmt.Printf("[%s] %s\n", m.Role, m.Content)
	}
	return nil
}

// ClearHistory wipes the transcript after confirmation.
func (a *App) ClearHistory(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Delete the whole conversation? (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		return nil
	}

	if err := a.api.ClearHistory(ctx); err != nil {
		fmt.Println("Error:", err)
		return err
	}
	fmt.Println("Chat history cleared")
	return nil
}

// Explain asks the server to explain an investment term.
func (a *App) Explain(ctx context.Context) error {
	term, err := GetSimpleText(a.reader, "Enter a term to explain", os.Stdout)
	if err != nil {
		return err
	}

	ex, err := a.api.Explain(ctx, term)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Printf("%s\n\n%s\n\nExample: %s\nInvested: %s, final value: %s, gain: %s\nRisk: %s\n",
		ex.Term, ex.Definition, ex.Example.Scenario,
		ex.Example.InvestedAmount, ex.Example.FinalValue, ex.Example.Gain, ex.RiskLevel)
	for _, tk := range ex.Takeaways {
		fmt.Println("-", tk)
	}
	return nil
}
