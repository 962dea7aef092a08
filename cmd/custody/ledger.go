package main

import (
	"github.com/tdex-network/tdex-custody/pkg/api"
	"github.com/urfave/cli/v2"
)

var airdrop = cli.Command{
	Name:  "airdrop",
	Usage: "credit lamports to an address, requires the faucet to be enabled",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "the receiving address, defaults to the local identity",
		},
		&cli.Uint64Flag{
			Name:  "lamports",
			Usage: "the amount of lamports to credit",
			Value: 1_000_000_000,
		},
	},
	Action: airdropAction,
}

var mint = cli.Command{
	Name:  "mint",
	Usage: "create mints and issue tokens",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create a new mint paid by the local identity",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "payer",
					Usage: "the payer of the storage deposit",
				},
				&cli.StringFlag{
					Name:  "authority",
					Usage: "the mint authority, defaults to the payer",
				},
				&cli.UintFlag{
					Name:  "decimals",
					Usage: "number of decimals of the mint",
					Value: 6,
				},
			},
			Action: createMintAction,
		},
		{
			Name:  "to",
			Usage: "issue tokens to the associated account of an owner",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "mint",
					Usage:    "the mint address",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "authority",
					Usage: "the mint authority",
				},
				&cli.StringFlag{
					Name:  "owner",
					Usage: "the owner of the receiving account, defaults to the authority",
				},
				&cli.Uint64Flag{
					Name:     "amount",
					Usage:    "the amount of tokens to issue",
					Required: true,
				},
			},
			Action: mintToAction,
		},
		{
			Name:      "get",
			Usage:     "get info about a mint",
			ArgsUsage: "<mint>",
			Action:    getMintAction,
		},
	},
}

var account = cli.Command{
	Name:  "account",
	Usage: "manage token accounts",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create the associated token account of an owner",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "mint",
					Usage:    "the mint address",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "payer",
					Usage: "the payer of the storage deposit",
				},
				&cli.StringFlag{
					Name:  "owner",
					Usage: "the owner of the account, defaults to the payer",
				},
			},
			Action: createAccountAction,
		},
		{
			Name:      "get",
			Usage:     "get a token account by address",
			ArgsUsage: "<address>",
			Action:    getTokenAccountAction,
		},
		{
			Name:      "lamports",
			Usage:     "get the native balance of an address",
			ArgsUsage: "[address]",
			Action:    getLamportsAction,
		},
	},
}

var balance = cli.Command{
	Name:  "balance",
	Usage: "get the token balance of an owner for a mint",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "mint",
			Usage:    "the mint address",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "owner",
			Usage: "the owner, defaults to the local identity",
		},
	},
	Action: balanceAction,
}

func airdropAction(ctx *cli.Context) error {
	addr, err := identityOrDefault(ctx, "address")
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.Airdrop(ctx.Context, addr, ctx.Uint64("lamports"))
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func createMintAction(ctx *cli.Context) error {
	payer, err := identityOrDefault(ctx, "payer")
	if err != nil {
		return err
	}
	authority := ctx.String("authority")
	if authority == "" {
		authority = payer
	}
	decimals := ctx.Uint("decimals")
	if decimals > 255 {
		return &invalidUsageError{ctx, "create"}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.CreateMint(ctx.Context, api.CreateMintRequest{
		Payer:     payer,
		Decimals:  uint8(decimals),
		Authority: authority,
	})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func mintToAction(ctx *cli.Context) error {
	authority, err := identityOrDefault(ctx, "authority")
	if err != nil {
		return err
	}
	owner := ctx.String("owner")
	if owner == "" {
		owner = authority
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.MintTo(ctx.Context, ctx.String("mint"), api.MintToRequest{
		Authority: authority,
		Owner:     owner,
		Amount:    ctx.Uint64("amount"),
	})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func getMintAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "get"}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.GetMint(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func createAccountAction(ctx *cli.Context) error {
	payer, err := identityOrDefault(ctx, "payer")
	if err != nil {
		return err
	}
	owner := ctx.String("owner")
	if owner == "" {
		owner = payer
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.CreateTokenAccount(
		ctx.Context, ctx.String("mint"),
		api.CreateTokenAccountRequest{Payer: payer, Owner: owner},
	)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func getTokenAccountAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "get"}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.GetTokenAccount(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func getLamportsAction(ctx *cli.Context) error {
	addr := ctx.Args().First()
	if addr == "" {
		state, err := getState()
		if err != nil {
			return err
		}
		if addr = state[identityKey]; addr == "" {
			return &invalidUsageError{ctx, "lamports"}
		}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.GetAccount(ctx.Context, addr)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func balanceAction(ctx *cli.Context) error {
	owner, err := identityOrDefault(ctx, "owner")
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.GetBalance(ctx.Context, owner, ctx.String("mint"))
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}
