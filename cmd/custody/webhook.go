package main

import (
	"fmt"

	"github.com/tdex-network/tdex-custody/pkg/api"
	"github.com/urfave/cli/v2"
)

var eventFlags = []struct {
	name  string
	event string
	usage string
}{
	{"escrow_made_event", "ESCROW_MADE", "whenever an escrow is made"},
	{"escrow_settled_event", "ESCROW_SETTLED", "whenever an escrow is taken"},
	{"escrow_refunded_event", "ESCROW_REFUNDED", "whenever an escrow is refunded"},
	{"marketplace_created_event", "MARKETPLACE_CREATED", "whenever a marketplace is created"},
	{"any_event", "*", "whenever any event occurs"},
}

func eventCliFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(eventFlags))
	for _, f := range eventFlags {
		flags = append(flags, &cli.BoolFlag{
			Name:  f.name,
			Usage: "triggers the webhook endpoint " + f.usage,
		})
	}
	return flags
}

var webhook = cli.Command{
	Name:  "webhook",
	Usage: "add, remove or list webhooks",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a (secured) webhook endpoint called whenever a target event occurs",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "the webhook endpoint to be called whenever the target event occurs",
					Required: true,
				},
				&cli.StringFlag{
					Name: "secret",
					Usage: "the eventual secret used to sign a bearer token for " +
						"authenticating requests to the webhook endpoint",
				},
			}, eventCliFlags()...),
			Action: addWebhookAction,
		},
		{
			Name:      "remove",
			Usage:     "remove a webhook",
			ArgsUsage: "<id>",
			Action:    removeWebhookAction,
		},
		{
			Name:   "list",
			Usage:  "list all webhooks, optionally filtered by target event",
			Flags:  eventCliFlags(),
			Action: listWebhooksAction,
		},
	},
}

func addWebhookAction(ctx *cli.Context) error {
	event, err := parseEvent(ctx)
	if err != nil {
		return err
	}
	if event == "" {
		return fmt.Errorf("missing event")
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.AddWebhook(ctx.Context, api.AddWebhookRequest{
		Event:    event,
		Endpoint: ctx.String("endpoint"),
		Secret:   ctx.String("secret"),
	})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func removeWebhookAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "remove"}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	hookID := ctx.Args().First()
	if err := client.RemoveWebhook(ctx.Context, hookID); err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, "removed webhook with id:", hookID)
	return nil
}

func listWebhooksAction(ctx *cli.Context) error {
	event, err := parseEvent(ctx)
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	list, err := client.ListWebhooks(ctx.Context, event)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, api.ListWebhooksResponse{Webhooks: list})
}

// parseEvent returns the event of the only event flag set, if any.
func parseEvent(ctx *cli.Context) (string, error) {
	event := ""
	for _, f := range eventFlags {
		if !ctx.Bool(f.name) {
			continue
		}
		if event != "" {
			return "", fmt.Errorf("only one event can be set for a webhook")
		}
		event = f.event
	}
	return event, nil
}
