package state

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	"github.com/artwhale/go-artwhale/submodule/control"
)

func payable(m tx.MsgType) bool {
	return m == tx.Mint
}

// dispatch runs msg against tds and returns the cbor encoded result.
func (s *StateMgr) dispatch(tds store.Store, msg *tx.Message, now time.Time) ([]byte, error) {
	if !payable(msg.Method) && msg.Value != nil && msg.Value.Sign() != 0 {
		return nil, ErrValue
	}

	var ret interface{}
	var err error

	switch msg.Method {
	case tx.CreateCollection:
		ret, err = s.createCollection(tds, msg)
	case tx.SetSigner, tx.SetOperator:
		p := new(tx.AddressParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		if msg.Method == tx.SetSigner {
			err = s.minter.SetSigner(tds, msg.From, p.Collection, p.Address)
		} else {
			err = s.minter.SetOperator(tds, msg.From, p.Collection, p.Address)
		}

	case tx.SetDefaultRoyalty, tx.SetTokenRoyalty, tx.ResetTokenRoyalty:
		err = s.applyRoyalty(tds, msg)

	case tx.AddSettlementToken, tx.RemoveSettlementToken:
		p := new(tx.CurrencyParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		if msg.Method == tx.AddSettlementToken {
			err = s.market.AddSettlementToken(tds, msg.From, p.Currency)
		} else {
			err = s.market.RemoveSettlementToken(tds, msg.From, p.Currency)
		}
	case tx.AddWhitelist, tx.RemoveWhitelist:
		p := new(tx.WhitelistParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		if msg.Method == tx.AddWhitelist {
			err = s.market.AddWhitelist(tds, msg.From, p.Standard, p.Contract)
		} else {
			err = s.market.RemoveWhitelist(tds, msg.From, p.Standard, p.Contract)
		}
	case tx.SetTradeFeePercent:
		p := new(tx.FeeParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		err = s.market.SetTradeFeePercent(tds, msg.From, p.Percent)
	case tx.Withdraw:
		p := new(tx.WithdrawParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		ret, err = s.market.Withdraw(tds, msg.From, p.Currency, p.Amount)

	case tx.CreateOrder:
		p := new(tx.CreateOrderParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		ret, err = s.market.CreateOrder(tds, msg.From, p)
	case tx.CancelOrder:
		p := new(tx.OrderParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		err = s.market.CancelOrder(tds, msg.From, p.OrderID)
	case tx.ExecuteOrder:
		p := new(tx.ExecuteParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		ret, err = s.market.ExecuteOrder(tds, msg.From, p.OrderID, p.NativeBeneficiary)

	case tx.Mint:
		p := new(tx.MintParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		err = s.minter.Mint(tds, msg.From, p.Collection, msg.Value, now.Unix(), &p.SignedMintAuthorization)
	case tx.OperatorMint:
		p := new(tx.OperatorMintParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		err = s.minter.OperatorMint(tds, msg.From, p.Collection, p.To, p.TokenID, p.Amount, p.URI)

	case tx.SetApprovalForAll:
		p := new(tx.ApprovalParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		err = s.items.SetApprovalForAll(tds, p.Contract, msg.From, p.Operator, p.Approved)
	case tx.Approve:
		p := new(tx.AllowanceParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		err = s.cur.Approve(tds, p.Currency, msg.From, p.Spender, p.Amount)
	case tx.Transfer:
		p := new(tx.TransferParams)
		if err := msg.DecodeParams(p); err != nil {
			return nil, err
		}
		err = s.cur.Transfer(tds, p.Currency, msg.From, p.To, p.Amount)
	case tx.CurrencyMint:
		err = s.currencyMint(tds, msg)

	default:
		return nil, xerrors.Errorf("%w: %d", types.ErrMsgMethod, msg.Method)
	}

	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, nil
	}
	return cbor.Marshal(ret)
}

// createCollection derives the address from the creator and message nonce.
func (s *StateMgr) createCollection(tds store.Store, msg *tx.Message) (common.Address, error) {
	if err := control.Check(s.gate.IsAdmin(tds, msg.From)); err != nil {
		return common.Address{}, err
	}

	p := new(tx.CollectionParams)
	if err := msg.DecodeParams(p); err != nil {
		return common.Address{}, err
	}

	treasury := p.Treasury
	if treasury == (common.Address{}) {
		treasury = msg.From
	}

	c := &types.Collection{
		Address:  crypto.CreateAddress(msg.From, msg.Nonce),
		Name:     p.Name,
		Symbol:   p.Symbol,
		Standard: p.Standard,
		Owner:    msg.From,
		Signer:   p.Signer,
		Treasury: treasury,
		BaseURI:  p.BaseURI,
	}
	if err := s.minter.CreateCollection(tds, c); err != nil {
		return common.Address{}, err
	}

	if len(p.Royalty) > 0 {
		if err := s.royalty.SetDefaultRoyalty(tds, msg.From, c.Address, p.Royalty); err != nil {
			return common.Address{}, err
		}
	}
	return c.Address, nil
}

func (s *StateMgr) applyRoyalty(tds store.Store, msg *tx.Message) error {
	p := new(tx.RoyaltyParams)
	if err := msg.DecodeParams(p); err != nil {
		return err
	}

	switch msg.Method {
	case tx.SetDefaultRoyalty:
		return s.royalty.SetDefaultRoyalty(tds, msg.From, p.Collection, p.Royalty)
	case tx.SetTokenRoyalty:
		return s.royalty.SetTokenRoyalty(tds, msg.From, p.Collection, p.TokenID, p.Royalty)
	default:
		return s.royalty.ResetTokenRoyalty(tds, msg.From, p.Collection, p.TokenID)
	}
}

// currencyMint is the admin faucet for registered currencies.
func (s *StateMgr) currencyMint(tds store.Store, msg *tx.Message) error {
	if err := control.Check(s.gate.IsAdmin(tds, msg.From)); err != nil {
		return err
	}

	p := new(tx.TransferParams)
	if err := msg.DecodeParams(p); err != nil {
		return err
	}

	ok, err := s.reg.IsSettlementToken(tds, p.Currency)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrCurrencyUnknown
	}
	return s.cur.Mint(tds, p.Currency, p.To, p.Amount)
}
