package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ahmarkhann/sidekick/internal/chat"
	"github.com/ahmarkhann/sidekick/internal/wiki"
)

func runChat(cmd *cobra.Command, args []string) error {
	// An interrupt should end the conversation politely, not dump a stack.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Printf("\nBot: %s\n", chat.Farewell)
		os.Exit(0)
	}()

	responder := chat.NewResponder(wiki.NewClient())
	session := chat.NewSession(responder, os.Stdin, os.Stdout)
	return session.Run(context.Background())
}
