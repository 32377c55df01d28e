package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-theft-craft/chat/internal/client"
)

func main() {
	var (
		host     string
		port     uint16
		username string
		verbose  bool
		timeout  time.Duration
	)

	newLogger := func() *slog.Logger {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	root := &cobra.Command{
		Use:          "mchat",
		Short:        "Minimal Minecraft Java Edition client (protocol 759 / 1.19)",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&host, "host", "localhost", "server hostname")
	root.PersistentFlags().Uint16Var(&port, "port", 25565, "server port")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "per-operation timeout")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Query and print the server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			c, err := client.Dial(ctx, host, port, newLogger())
			if err != nil {
				return err
			}
			defer c.Close()

			opCtx, opCancel := context.WithTimeout(ctx, timeout)
			defer opCancel()
			raw, err := c.Status(opCtx)
			if err != nil {
				return err
			}

			st, err := client.ParseStatus(raw)
			if err != nil {
				return err
			}

			fmt.Printf("%s (protocol %d)\n", st.Version.Name, st.Version.Protocol)
			fmt.Printf("players: %d/%d\n", st.Players.Online, st.Players.Max)
			for _, p := range st.Players.Sample {
				fmt.Printf("  %s (%s)\n", p.Name, p.ID)
			}
			if desc := st.DescriptionText(); desc != "" {
				fmt.Printf("motd: %s\n", desc)
			}
			return nil
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the assigned identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			c, err := client.Dial(ctx, host, port, newLogger())
			if err != nil {
				return err
			}
			defer c.Close()

			opCtx, opCancel := context.WithTimeout(ctx, timeout)
			defer opCancel()
			success, err := c.Login(opCtx, username)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", success.Username, success.UUID)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&username, "username", "mchat", "login username")

	var message string
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Log in, stay connected, and send a chat message on every keep alive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			log := newLogger()
			c, err := client.Dial(ctx, host, port, log)
			if err != nil {
				return err
			}
			defer c.Close()

			loginCtx, loginCancel := context.WithTimeout(ctx, timeout)
			defer loginCancel()
			if _, err := c.Login(loginCtx, username); err != nil {
				return err
			}

			for {
				if err := c.RespondToKeepAlive(ctx); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				if err := c.SendChatMessage(message); err != nil {
					return err
				}
				log.Info("chat sent", "message", message)
			}
		},
	}
	chatCmd.Flags().StringVar(&username, "username", "mchat", "login username")
	chatCmd.Flags().StringVar(&message, "message", "hello from mchat", "chat message to send")

	root.AddCommand(statusCmd, loginCmd, chatCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
