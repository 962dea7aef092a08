package application

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

// EscrowService defines the methods of the application layer for the escrow
// state machine: Make locks the maker's funds in a vault only the escrow can
// move, Take and Refund are the two mutually exclusive ways to close it.
type EscrowService interface {
	Make(ctx context.Context, req MakeEscrowRequest) (*domain.Escrow, error)
	Take(ctx context.Context, req TakeEscrowRequest) (*domain.Settlement, error)
	Refund(
		ctx context.Context, req RefundEscrowRequest,
	) (*domain.Settlement, error)
	GetEscrow(ctx context.Context, addr address.Address) (*EscrowInfo, error)
	// ListEscrows returns the active escrows, optionally filtered by maker.
	ListEscrows(
		ctx context.Context, maker *address.Address,
	) ([]domain.Escrow, error)
	GetEscrowStatus(
		ctx context.Context, addr address.Address,
	) (domain.EscrowStatus, error)
	// ListSettlements returns the receipts of closed escrows, optionally
	// filtered by escrow address, oldest first.
	ListSettlements(
		ctx context.Context, escrow *address.Address,
	) ([]domain.Settlement, error)
}

type escrowService struct {
	repoManager          ports.RepoManager
	ledger               ports.TokenLedger
	programID            address.Address
	marketplaceProgramID address.Address
	events               eventPublisher
}

// NewEscrowService is a constructor function for EscrowService. Webhooks are
// notified of every escrow made or closed unless notifier is nil.
func NewEscrowService(
	repoManager ports.RepoManager,
	ledger ports.TokenLedger,
	notifier ports.WebhookNotifier,
	programID, marketplaceProgramID address.Address,
) EscrowService {
	return &escrowService{
		repoManager:          repoManager,
		ledger:               ledger,
		programID:            programID,
		marketplaceProgramID: marketplaceProgramID,
		events:               eventPublisher{repoManager, notifier},
	}
}

func (s *escrowService) Make(
	ctx context.Context, req MakeEscrowRequest,
) (*domain.Escrow, error) {
	maker, err := domain.NewUserSigner(req.Maker)
	if err != nil {
		return nil, err
	}
	if req.DepositAmount == 0 {
		return nil, domain.ErrInvalidAmount
	}

	escrow, err := domain.NewEscrow(
		s.programID, req.Maker, req.MintA, req.MintB,
		req.Seed, req.ReceiveAmount,
	)
	if err != nil {
		return nil, err
	}

	_, err = s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if _, err := s.repoManager.EscrowRepository().GetEscrow(
				ctx, escrow.Address,
			); err == nil {
				return nil, domain.ErrEscrowAlreadyExists
			} else if !errors.Is(err, domain.ErrEscrowNotFound) {
				return nil, err
			}

			mintA, err := s.ledger.GetMint(ctx, req.MintA)
			if err != nil {
				return nil, err
			}
			if _, err := s.ledger.GetMint(ctx, req.MintB); err != nil {
				return nil, err
			}
			source, err := s.associatedAccount(ctx, req.Maker, req.MintA)
			if err != nil {
				return nil, err
			}

			rent, err := s.ledger.Allocate(ctx, maker, domain.EscrowSpace)
			if err != nil {
				return nil, err
			}
			escrow.Lamports = rent
			if err := s.repoManager.EscrowRepository().AddEscrow(
				ctx, escrow,
			); err != nil {
				return nil, err
			}

			vault, err := s.ledger.CreateAssociatedAccount(
				ctx, maker, req.MintA, escrow.Address,
			)
			if err != nil {
				return nil, err
			}
			if err := escrow.ValidateVault(vault); err != nil {
				return nil, err
			}

			return nil, s.ledger.TransferChecked(
				ctx, source, vault.Address, req.MintA,
				req.DepositAmount, mintA.Decimals, maker,
			)
		},
	)
	observe("make", err)
	if err != nil {
		log.WithError(err).WithField("maker", req.Maker.String()).
			Debug("escrow: make failed")
		return nil, err
	}

	log.WithFields(log.Fields{
		"escrow": escrow.Address.String(),
		"maker":  escrow.Maker.String(),
		"seed":   escrow.Seed,
	}).Info("escrow: made")
	s.events.publish(
		domain.EventEscrowMade, escrowMadePayload(escrow, req.DepositAmount),
	)
	return escrow, nil
}

func (s *escrowService) Take(
	ctx context.Context, req TakeEscrowRequest,
) (*domain.Settlement, error) {
	taker, err := domain.NewUserSigner(req.Taker)
	if err != nil {
		return nil, err
	}

	var marketplaceAddr address.Address
	if req.Marketplace != "" {
		if marketplaceAddr, _, err = domain.DeriveMarketplaceAddress(
			s.marketplaceProgramID, req.Marketplace,
		); err != nil {
			return nil, err
		}
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			escrow, signer, vault, err := s.loadEscrow(ctx, req.Escrow)
			if err != nil {
				return nil, err
			}
			mintA, err := s.ledger.GetMint(ctx, escrow.MintA)
			if err != nil {
				return nil, err
			}
			mintB, err := s.ledger.GetMint(ctx, escrow.MintB)
			if err != nil {
				return nil, err
			}
			source, err := s.associatedAccount(ctx, req.Taker, escrow.MintB)
			if err != nil {
				return nil, err
			}

			settlement := domain.NewSettlement(escrow, domain.EscrowStatusSettled)
			settlement.Taker = req.Taker
			settlement.AmountA = vault.Amount
			settlement.AmountB = escrow.ReceiveAmount

			// Pay the maker, net of the marketplace fee if any.
			toMaker := escrow.ReceiveAmount
			if req.Marketplace != "" {
				marketplace, err := s.repoManager.MarketplaceRepository().
					GetMarketplace(ctx, marketplaceAddr)
				if err != nil {
					return nil, err
				}
				net, fee := marketplace.SplitFee(escrow.ReceiveAmount)
				toMaker = net
				settlement.Marketplace = marketplace.Address
				settlement.Fee = fee

				if fee > 0 {
					treasury, err := s.ledger.GetOrCreateAssociatedAccount(
						ctx, taker, escrow.MintB, marketplace.Treasury,
					)
					if err != nil {
						return nil, err
					}
					if err := s.ledger.TransferChecked(
						ctx, source, treasury.Address, escrow.MintB,
						fee, mintB.Decimals, taker,
					); err != nil {
						return nil, err
					}
				}
			}

			makerAccount, err := s.ledger.GetOrCreateAssociatedAccount(
				ctx, taker, escrow.MintB, escrow.Maker,
			)
			if err != nil {
				return nil, err
			}
			if err := s.ledger.TransferChecked(
				ctx, source, makerAccount.Address, escrow.MintB,
				toMaker, mintB.Decimals, taker,
			); err != nil {
				return nil, err
			}

			// Release the vault to the taker.
			takerAccount, err := s.ledger.GetOrCreateAssociatedAccount(
				ctx, taker, escrow.MintA, req.Taker,
			)
			if err != nil {
				return nil, err
			}
			if err := s.ledger.TransferChecked(
				ctx, vault.Address, takerAccount.Address, escrow.MintA,
				vault.Amount, mintA.Decimals, signer,
			); err != nil {
				return nil, err
			}
			if err := s.ledger.CloseAccount(
				ctx, vault.Address, req.Taker, signer,
			); err != nil {
				return nil, err
			}

			if err := s.close(ctx, escrow, settlement); err != nil {
				return nil, err
			}
			return settlement, nil
		},
	)
	observe("take", err)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"escrow": req.Escrow.String(),
			"taker":  req.Taker.String(),
		}).Debug("escrow: take failed")
		return nil, err
	}

	settlement := res.(*domain.Settlement)
	log.WithFields(log.Fields{
		"escrow":      settlement.Escrow.String(),
		"maker":       settlement.Maker.String(),
		"taker":       settlement.Taker.String(),
		"marketplace": req.Marketplace,
	}).Info("escrow: taken")
	s.events.publish(domain.EventEscrowSettled, settlementPayload(settlement))
	return settlement, nil
}

func (s *escrowService) Refund(
	ctx context.Context, req RefundEscrowRequest,
) (*domain.Settlement, error) {
	maker, err := domain.NewUserSigner(req.Maker)
	if err != nil {
		return nil, err
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			escrow, signer, vault, err := s.loadEscrow(ctx, req.Escrow)
			if err != nil {
				return nil, err
			}
			if !escrow.IsMaker(req.Maker) {
				return nil, domain.ErrEscrowNotMaker
			}
			mintA, err := s.ledger.GetMint(ctx, escrow.MintA)
			if err != nil {
				return nil, err
			}

			makerAccount, err := s.ledger.GetOrCreateAssociatedAccount(
				ctx, maker, escrow.MintA, escrow.Maker,
			)
			if err != nil {
				return nil, err
			}
			if err := s.ledger.TransferChecked(
				ctx, vault.Address, makerAccount.Address, escrow.MintA,
				vault.Amount, mintA.Decimals, signer,
			); err != nil {
				return nil, err
			}
			if err := s.ledger.CloseAccount(
				ctx, vault.Address, escrow.Maker, signer,
			); err != nil {
				return nil, err
			}

			settlement := domain.NewSettlement(escrow, domain.EscrowStatusRefunded)
			settlement.AmountA = vault.Amount
			if err := s.close(ctx, escrow, settlement); err != nil {
				return nil, err
			}
			return settlement, nil
		},
	)
	observe("refund", err)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"escrow": req.Escrow.String(),
			"maker":  req.Maker.String(),
		}).Debug("escrow: refund failed")
		return nil, err
	}

	settlement := res.(*domain.Settlement)
	log.WithFields(log.Fields{
		"escrow": settlement.Escrow.String(),
		"maker":  settlement.Maker.String(),
	}).Info("escrow: refunded")
	s.events.publish(domain.EventEscrowRefunded, settlementPayload(settlement))
	return settlement, nil
}

func (s *escrowService) GetEscrow(
	ctx context.Context, addr address.Address,
) (*EscrowInfo, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			escrow, err := s.repoManager.EscrowRepository().GetEscrow(ctx, addr)
			if err != nil {
				return nil, err
			}
			vault, err := s.ledger.GetAccount(ctx, escrow.Vault)
			if err != nil {
				return nil, err
			}
			return &EscrowInfo{*escrow, vault.Amount}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*EscrowInfo), nil
}

func (s *escrowService) ListEscrows(
	ctx context.Context, maker *address.Address,
) ([]domain.Escrow, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			if maker != nil {
				return s.repoManager.EscrowRepository().GetEscrowsByMaker(ctx, *maker)
			}
			return s.repoManager.EscrowRepository().GetAllEscrows(ctx)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]domain.Escrow), nil
}

func (s *escrowService) GetEscrowStatus(
	ctx context.Context, addr address.Address,
) (domain.EscrowStatus, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			_, err := s.repoManager.EscrowRepository().GetEscrow(ctx, addr)
			if err == nil {
				return domain.EscrowStatusActive, nil
			}
			if !errors.Is(err, domain.ErrEscrowNotFound) {
				return nil, err
			}

			settlements, err := s.repoManager.SettlementRepository().
				GetSettlementsByEscrow(ctx, addr)
			if err != nil {
				return nil, err
			}
			if len(settlements) == 0 {
				return nil, domain.ErrEscrowNotFound
			}
			return settlements[len(settlements)-1].Status, nil
		},
	)
	if err != nil {
		return -1, err
	}
	return res.(domain.EscrowStatus), nil
}

func (s *escrowService) ListSettlements(
	ctx context.Context, escrow *address.Address,
) ([]domain.Settlement, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			if escrow != nil {
				return s.repoManager.SettlementRepository().
					GetSettlementsByEscrow(ctx, *escrow)
			}
			return s.repoManager.SettlementRepository().GetAllSettlements(ctx)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]domain.Settlement), nil
}

// loadEscrow returns the active escrow at the given address, the signer
// acting as its vault authority and the vault itself.
func (s *escrowService) loadEscrow(
	ctx context.Context, addr address.Address,
) (*domain.Escrow, domain.ProgramSigner, *domain.TokenAccount, error) {
	escrow, err := s.repoManager.EscrowRepository().GetEscrow(ctx, addr)
	if err != nil {
		return nil, domain.ProgramSigner{}, nil, err
	}
	signer, err := escrow.Signer(s.programID)
	if err != nil {
		return nil, domain.ProgramSigner{}, nil, err
	}
	vault, err := s.ledger.GetAccount(ctx, escrow.Vault)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			err = domain.ErrEscrowInvalidVault
		}
		return nil, domain.ProgramSigner{}, nil, err
	}
	if err := escrow.ValidateVault(vault); err != nil {
		return nil, domain.ProgramSigner{}, nil, err
	}
	return escrow, signer, vault, nil
}

// close removes the escrow record, returns its storage deposit to the maker
// and stores the settlement receipt.
func (s *escrowService) close(
	ctx context.Context, escrow *domain.Escrow, settlement *domain.Settlement,
) error {
	if err := s.repoManager.EscrowRepository().DeleteEscrow(
		ctx, escrow.Address,
	); err != nil {
		return err
	}
	if err := s.ledger.Release(ctx, escrow.Maker, escrow.Lamports); err != nil {
		return err
	}
	return s.repoManager.SettlementRepository().AddSettlement(ctx, settlement)
}

// associatedAccount returns the address of the associated token account of
// owner for the given mint, failing if it does not exist.
func (s *escrowService) associatedAccount(
	ctx context.Context, owner, mint address.Address,
) (address.Address, error) {
	addr, err := domain.AssociatedTokenAddress(owner, mint)
	if err != nil {
		return address.Address{}, err
	}
	if _, err := s.ledger.GetAccount(ctx, addr); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return address.Address{}, ErrMissingTokenAccount
		}
		return address.Address{}, err
	}
	return addr, nil
}
