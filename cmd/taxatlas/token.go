package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taxatlas/internal/auth"
)

var tokenSave bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a write token for dataset submissions",
	Long: `Token generates a fresh random write token and its bcrypt hash.
Store the hash in .taxatlas/config.json under auth.tokenHash and hand the
plaintext token to whoever submits dataset edits.

With --save the hash is written into the config file directly; the
plaintext is shown once and never stored.

Examples:
  taxatlas token
  taxatlas token --save`,
	Run: runToken,
}

func init() {
	tokenCmd.Flags().BoolVar(&tokenSave, "save", false, "Write the hash into .taxatlas/config.json")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) {
	token, err := auth.GenerateToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashToken(token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Write Token Created:")
	fmt.Println()
	fmt.Printf("  Token: %s\n", token)
	fmt.Printf("  Hash:  %s\n", hash)
	fmt.Println()
	fmt.Println("  IMPORTANT: Store the token securely. It will not be shown again.")

	if !tokenSave {
		fmt.Println()
		fmt.Println("  Run with --save to store the hash in .taxatlas/config.json,")
		fmt.Println("  or set auth.tokenHash there yourself.")
		return
	}

	cfg := mustLoadConfig()
	cfg.Auth.TokenHash = hash
	cfg.Auth.Token = ""
	if err := cfg.Save(rootFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("  Hash saved to config. Previous tokens are now invalid.")
}
