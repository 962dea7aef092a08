package main

import (
	"github.com/tdex-network/tdex-custody/pkg/api"
	"github.com/urfave/cli/v2"
)

var escrowFlag = cli.StringFlag{
	Name:     "escrow",
	Usage:    "the escrow address",
	Required: true,
}

var escrow = cli.Command{
	Name:  "escrow",
	Usage: "make, take, refund and inspect escrows",
	Subcommands: []*cli.Command{
		{
			Name:  "make",
			Usage: "lock tokens of mint_a in exchange for an amount of mint_b",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "maker",
					Usage: "the maker, defaults to the local identity",
				},
				&cli.Uint64Flag{
					Name:  "seed",
					Usage: "the seed distinguishing escrows of the same maker",
				},
				&cli.StringFlag{
					Name:     "mint_a",
					Usage:    "the mint of the deposited tokens",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "mint_b",
					Usage:    "the mint of the requested tokens",
					Required: true,
				},
				&cli.Uint64Flag{
					Name:     "deposit",
					Usage:    "the amount of mint_a tokens to lock",
					Required: true,
				},
				&cli.Uint64Flag{
					Name:     "receive",
					Usage:    "the amount of mint_b tokens requested",
					Required: true,
				},
			},
			Action: makeEscrowAction,
		},
		{
			Name:  "take",
			Usage: "pay the requested amount and receive the locked tokens",
			Flags: []cli.Flag{
				&escrowFlag,
				&cli.StringFlag{
					Name:  "taker",
					Usage: "the taker, defaults to the local identity",
				},
				&cli.StringFlag{
					Name:  "marketplace",
					Usage: "the name of the marketplace collecting a fee, if any",
				},
			},
			Action: takeEscrowAction,
		},
		{
			Name:  "refund",
			Usage: "close an escrow and get back the locked tokens",
			Flags: []cli.Flag{
				&escrowFlag,
				&cli.StringFlag{
					Name:  "maker",
					Usage: "the maker, defaults to the local identity",
				},
			},
			Action: refundEscrowAction,
		},
		{
			Name:      "get",
			Usage:     "get an active escrow",
			ArgsUsage: "<escrow>",
			Action:    getEscrowAction,
		},
		{
			Name:      "status",
			Usage:     "get the status of an escrow, active or closed",
			ArgsUsage: "<escrow>",
			Action:    escrowStatusAction,
		},
		{
			Name:  "list",
			Usage: "list active escrows",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "maker",
					Usage: "list only the escrows of this maker",
				},
			},
			Action: listEscrowsAction,
		},
	},
}

var settlements = cli.Command{
	Name:  "settlements",
	Usage: "list the receipts of closed escrows",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "escrow",
			Usage: "list only the receipts of this escrow",
		},
	},
	Action: listSettlementsAction,
}

func makeEscrowAction(ctx *cli.Context) error {
	maker, err := identityOrDefault(ctx, "maker")
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.MakeEscrow(ctx.Context, api.MakeEscrowRequest{
		Maker:         maker,
		Seed:          ctx.Uint64("seed"),
		MintA:         ctx.String("mint_a"),
		MintB:         ctx.String("mint_b"),
		DepositAmount: ctx.Uint64("deposit"),
		ReceiveAmount: ctx.Uint64("receive"),
	})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func takeEscrowAction(ctx *cli.Context) error {
	taker, err := identityOrDefault(ctx, "taker")
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.TakeEscrow(
		ctx.Context, ctx.String("escrow"), api.TakeEscrowRequest{
			Taker:       taker,
			Marketplace: ctx.String("marketplace"),
		},
	)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func refundEscrowAction(ctx *cli.Context) error {
	maker, err := identityOrDefault(ctx, "maker")
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.RefundEscrow(
		ctx.Context, ctx.String("escrow"), api.RefundEscrowRequest{Maker: maker},
	)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func getEscrowAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "get"}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	resp, err := client.GetEscrow(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func escrowStatusAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "status"}
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	escrow := ctx.Args().First()
	status, err := client.GetEscrowStatus(ctx.Context, escrow)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, api.EscrowStatus{Escrow: escrow, Status: status})
}

func listEscrowsAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	escrows, err := client.ListEscrows(ctx.Context, ctx.String("maker"))
	if err != nil {
		return err
	}
	return printRespJSON(ctx, api.ListEscrowsResponse{Escrows: escrows})
}

func listSettlementsAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	list, err := client.ListSettlements(ctx.Context, ctx.String("escrow"))
	if err != nil {
		return err
	}
	return printRespJSON(ctx, api.ListSettlementsResponse{Settlements: list})
}
