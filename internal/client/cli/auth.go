package cli

import (
	"context"
	"fmt"
	"os"
)

// Register prompts for account details and creates an account. A successful
// signup also signs the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Signup(ctx, name, email, string(password)); err != nil {
		fmt.Println("Signup failed:", err)
		return err
	}

	fmt.Printf("Welcome, %s!\n", a.api.User().Name)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	fmt.Printf("Welcome back, %s!\n", a.api.User().Name)
	return nil
}

// Logout drops the session.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	fmt.Println("Logged out")
	return nil
}
