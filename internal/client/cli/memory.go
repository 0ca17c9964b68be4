package cli

import (
	"context"
	"fmt"
	"os"
)

// Memory prints the facts the assistant has remembered, newest first.
func (a *App) Memory(ctx context.Context) error {
	facts, err := a.api.Memory(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if len(facts) == 0 {
		fmt.Println("Nothing remembered yet")
		return nil
	}
	for _, f := range facts {
		fmt.Printf("%s  [%s] %s\n", f.ID, f.Category, f.Content)
	}
	return nil
}

// Forget deletes a single fact by id.
func (a *App) Forget(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter the id of the fact to forget", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Forget(ctx, id); err != nil {
		fmt.Println("Error:", err)
		return err
	}
	fmt.Println("Forgotten")
	return nil
}

// ClearMemory wipes all facts after confirmation.
func (a *App) ClearMemory(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Delete everything the assistant remembers? (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		return nil
	}

	if err := a.api.ClearMemory(ctx); err != nil {
		fmt.Println("Error:", err)
		return err
	}
	fmt.Println("All memories cleared")
	return nil
}
