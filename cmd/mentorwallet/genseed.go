package main

import (
	"encoding/hex"
	"strings"

	"github.com/blind-mentorship/mentorship-wallet/pkg/hdwallet"
	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:  "genseed",
	Usage: "generate a new wallet seed and its mnemonic",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "entropy",
			Usage: "entropy size in bits of the mnemonic",
			Value: 256,
		},
	},
	Action: genSeedAction,
}

func genSeedAction(ctx *cli.Context) error {
	mnemonic, err := hdwallet.NewMnemonic(hdwallet.NewMnemonicOpts{
		EntropySize: ctx.Int("entropy"),
	})
	if err != nil {
		return err
	}
	seed, err := hdwallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return err
	}
	defer hdwallet.Wipe(seed)

	printJSON(map[string]string{
		"mnemonic": strings.Join(mnemonic, " "),
		"seed":     hex.EncodeToString(seed),
	})
	return nil
}
