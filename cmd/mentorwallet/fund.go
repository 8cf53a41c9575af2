package main

import (
	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/urfave/cli/v2"
)

var fund = cli.Command{
	Name:  "fund",
	Usage: "send funds from a wallet to the given address",
	Flags: []cli.Flag{
		&seedFlag,
		&mnemonicFlag,
		&tokenFlag,
		&cli.StringFlag{
			Name:     "address",
			Usage:    "unshielded address of the receiver",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "amount to send in token units, ie. 1.5",
			Required: true,
		},
	},
	Action: fundAction,
}

func fundAction(ctx *cli.Context) error {
	amount, err := parseAmount(ctx.String("amount"))
	if err != nil {
		return err
	}

	walletSvc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	transfer, err := walletSvc.Transfer(ctx.Context, []application.TransferRequest{
		{
			Address:   ctx.String("address"),
			Amount:    amount,
			TokenType: ctx.String(tokenFlag.Name),
		},
	})
	if err != nil {
		return err
	}

	printJSON(map[string]string{
		"transfer_id": transfer.Id,
		"status":      transfer.Status.String(),
		"tx_hash":     transfer.TxHash,
	})
	return nil
}
