// Command parkingctl runs one bot command against the configured store,
// exactly as if it had arrived through the webhook.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"parkingbot/cmd/bootstrap"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/usecase/commands"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

const runTimeout = 30 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	var userID, channel, trigger string

	flagSet := pflag.NewFlagSet("parkingctl", pflag.ContinueOnError)
	flagSet.StringVarP(&userID, "user", "u", "", "chat user id to act as (required for claim/unclaim)")
	flagSet.StringVarP(&channel, "channel", "c", "parkingctl", "channel name, checked against CHANNEL_BLACKLIST")
	flagSet.StringVar(&trigger, "trigger", "parkingbot", "trigger word prefixed to the command")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(argv); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(flagSet)
		return nil
	}

	var (
		cfg      config.Config
		handlers commands.ParkingCommands
	)
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&cfg, &handlers),
	)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	text := trigger + " " + strings.Join(flagSet.Args(), " ")
	reply := handlers.Handle(ctx, commands.Command{
		Token:       cfg.Slack.WebhookToken,
		ChannelName: strings.TrimPrefix(channel, "#"),
		UserID:      userID,
		Text:        text,
		TriggerWord: trigger,
	})
	fmt.Println(reply)
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `parkingctl runs a parking bot command locally.

Usage:
  parkingctl [flags] <command...>

Examples:
  parkingctl show
  parkingctl --user U024BE7LH claim next wednesday
  parkingctl -u U024BE7LH unclaim 2016-05-08

Flags:
%s`, flagSet.FlagUsages())
}
