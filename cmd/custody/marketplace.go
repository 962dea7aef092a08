package main

import (
	"github.com/tdex-network/tdex-custody/pkg/api"
	"github.com/urfave/cli/v2"
)

var marketplace = cli.Command{
	Name:  "marketplace",
	Usage: "create and inspect marketplaces",
	Subcommands: []*cli.Command{
		{
			Name:  "init",
			Usage: "create a marketplace along with its rewards mint",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "admin",
					Usage: "the admin, defaults to the local identity",
				},
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the unique name of the marketplace",
					Required: true,
				},
				&cli.UintFlag{
					Name:  "fee",
					Usage: "the fee in basis points charged on takes",
				},
			},
			Action: initMarketplaceAction,
		},
		{
			Name:      "get",
			Usage:     "get a marketplace by name",
			ArgsUsage: "<name>",
			Action:    getMarketplaceAction,
		},
		{
			Name:   "list",
			Usage:  "list all marketplaces",
			Action: listMarketplacesAction,
		},
		{
			Name:  "rewards",
			Usage: "issue reward tokens of a marketplace",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "admin",
					Usage: "the admin, defaults to the local identity",
				},
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the marketplace",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "recipient",
					Usage:    "the owner of the receiving account",
					Required: true,
				},
				&cli.Uint64Flag{
					Name:     "amount",
					Usage:    "the amount of reward tokens to issue",
					Required: true,
				},
			},
			Action: mintRewardsAction,
		},
	},
}

func initMarketplaceAction(ctx *cli.Context) error {
	admin, err := identityOrDefault(ctx, "admin")
	if err != nil {
		return err
	}
	fee := ctx.Uint("fee")
	if fee > 65535 {
		return &invalidUsageError{ctx, "init"}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.InitMarketplace(ctx.Context, api.InitMarketplaceRequest{
		Admin: admin,
		Name:  ctx.String("name"),
		Fee:   uint16(fee),
	})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func getMarketplaceAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "get"}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.GetMarketplace(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func listMarketplacesAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	list, err := client.ListMarketplaces(ctx.Context)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, api.ListMarketplacesResponse{Marketplaces: list})
}

func mintRewardsAction(ctx *cli.Context) error {
	admin, err := identityOrDefault(ctx, "admin")
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.MintRewards(
		ctx.Context, ctx.String("name"), api.MintRewardsRequest{
			Admin:     admin,
			Recipient: ctx.String("recipient"),
			Amount:    ctx.Uint64("amount"),
		},
	)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}
