package service

import (
	"sync/atomic"

	"github.com/kittyhub/kittyhub.go/bank"
	"github.com/kittyhub/kittyhub.go/kitty"
	"github.com/kittyhub/kittyhub.go/ledger"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type KittyhubService struct {
	Config      *Config
	DB          *bun.DB
	Logger      *lecho.Logger
	Ledger      ledger.Ledger
	Bank        bank.Bank
	Seeds       kitty.SeedSource
	GenderRule  kitty.GenderRule
	EventPubSub *Pubsub

	callSeq atomic.Uint64
}

// nextNonce returns the call sequence number mixed into DNA derivation.
// Two derivations in one process never share a nonce, so even a frozen
// seed source cannot produce colliding DNA.
func (svc *KittyhubService) nextNonce() uint64 {
	return svc.callSeq.Add(1)
}
