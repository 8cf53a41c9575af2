package main

import (
	"encoding/hex"
	"fmt"

	"github.com/blind-mentorship/mentorship-wallet/pkg/hdwallet"
	"github.com/blind-mentorship/mentorship-wallet/pkg/keystore"
	"github.com/urfave/cli/v2"
)

var address = cli.Command{
	Name:  "address",
	Usage: "derive the unshielded address and the shielded keys of a wallet",
	Flags: []cli.Flag{
		&seedFlag, &mnemonicFlag,
		&cli.UintFlag{
			Name:  "account",
			Usage: "the account to derive the keys for",
		},
		&cli.UintFlag{
			Name:  "index",
			Usage: "the index to derive the keys at",
		},
	},
	Action: addressAction,
}

func addressAction(ctx *cli.Context) error {
	account, index := ctx.Uint("account"), ctx.Uint("index")
	if account > hdwallet.MaxHardenedValue || index > hdwallet.MaxHardenedValue {
		return fmt.Errorf(
			"account and index must be in range [0, %d]", hdwallet.MaxHardenedValue,
		)
	}

	seed, err := getSeed(ctx)
	if err != nil {
		return err
	}
	w, err := hdwallet.NewWalletFromSeed(seed)
	hdwallet.Wipe(seed)
	if err != nil {
		return err
	}
	defer w.Clear()

	opts := hdwallet.DeriveKeysOpts{
		Account: uint32(account),
		Roles:   []hdwallet.Role{hdwallet.RoleNightExternal, hdwallet.RoleZswap},
		Index:   uint32(index),
	}
	keys, err := w.DeriveKeys(opts)
	if err != nil {
		return err
	}
	defer keys.Wipe()

	ks, err := keystore.New(
		keys[hdwallet.RoleNightExternal], ctx.String(networkFlag.Name),
	)
	if err != nil {
		return err
	}
	defer ks.Clear()

	shielded, err := keystore.NewShieldedKeys(keys[hdwallet.RoleZswap])
	if err != nil {
		return err
	}

	printJSON(map[string]string{
		"network": ks.NetworkID(),
		"address": ks.Address(),
		"path": hdwallet.KeyPath(
			opts.Account, hdwallet.RoleNightExternal, opts.Index,
		).String(),
		"shieldedCoinPublicKey":       hex.EncodeToString(shielded.CoinPublicKey),
		"shieldedEncryptionPublicKey": hex.EncodeToString(shielded.EncryptionPublicKey),
		"shieldedPath": hdwallet.KeyPath(
			opts.Account, hdwallet.RoleZswap, opts.Index,
		).String(),
	})
	return nil
}
