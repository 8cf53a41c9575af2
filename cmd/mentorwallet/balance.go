package main

import (
	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "get the unshielded balance of a wallet",
	Flags:  []cli.Flag{&seedFlag, &mnemonicFlag, &tokenFlag},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if token := ctx.String(tokenFlag.Name); len(token) > 0 {
		amount, err := walletSvc.Balance(ctx.Context, token)
		if err != nil {
			return err
		}
		printJSON(map[string]string{token: formatAmount(amount)})
		return nil
	}

	balances, err := walletSvc.Balances(ctx.Context)
	if err != nil {
		return err
	}
	res := make(map[string]string, len(balances))
	for token, amount := range balances {
		res[token] = formatAmount(amount)
	}
	printJSON(res)
	return nil
}
