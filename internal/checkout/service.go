package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/cart"
	"github.com/stockroomhq/stockroom-backend/internal/catalog"
	"github.com/stockroomhq/stockroom-backend/internal/checkout/stock"
	"github.com/stockroomhq/stockroom-backend/internal/ledger"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
)

// uncataloguedDescription labels parts bootstrapped by a check-in before
// anyone registered them in the catalog.
const uncataloguedDescription = "Uncatalogued"

// CheckoutInput carries everything a checkout commit needs besides the cart
// contents, which are read inside the transaction.
type CheckoutInput struct {
	UserUPN     string
	WorkOrderNo string
	ClientIP    string
	UserAgent   string
}

// CheckinInput returns one unit of one part to stock.
type CheckinInput struct {
	UserUPN       string
	PartNo        string
	WorkOrderNo   string
	VendorClaimNo string
	ClientIP      string
	UserAgent     string
}

// ReceiptLine reports one redeemed cart line with its quantity snapshot.
type ReceiptLine struct {
	PartNo  string `json:"part_no"`
	Qty     int    `json:"qty"`
	PrevQty int    `json:"prev_qty"`
	NewQty  int    `json:"new_qty"`
}

// CheckoutReceipt summarizes one committed checkout.
type CheckoutReceipt struct {
	WorkOrderNo string        `json:"work_order_no"`
	Lines       []ReceiptLine `json:"lines"`
}

// CheckinReceipt summarizes one committed check-in.
type CheckinReceipt struct {
	PartNo      string `json:"part_no"`
	WorkOrderNo string `json:"work_order_no"`
	PrevQty     int    `json:"prev_qty"`
	NewQty      int    `json:"new_qty"`
}

// Service is the commit engine. Each operation runs as a single database
// transaction: every side effect lands together or none do.
type Service interface {
	CheckoutCommit(ctx context.Context, input CheckoutInput) (*CheckoutReceipt, error)
	Checkin(ctx context.Context, input CheckinInput) (*CheckinReceipt, error)
}

type service struct {
	tx          db.TxRunner
	catalogRepo catalog.Repository
	cartRepo    cart.Repository
	stockRepo   stock.Repository
	ledgerRepo  ledger.Repository
	metrics     *metrics.CommitMetrics
	logg        *logger.Logger
}

// NewService wires the commit engine with its collaborators. Metrics may be
// nil, in which case observations are dropped.
func NewService(
	tx db.TxRunner,
	catalogRepo catalog.Repository,
	cartRepo cart.Repository,
	stockRepo stock.Repository,
	ledgerRepo ledger.Repository,
	commitMetrics *metrics.CommitMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil || catalogRepo == nil || cartRepo == nil || stockRepo == nil || ledgerRepo == nil {
		return nil, fmt.Errorf("checkout service requires tx runner and all repositories")
	}
	return &service{
		tx:          tx,
		catalogRepo: catalogRepo,
		cartRepo:    cartRepo,
		stockRepo:   stockRepo,
		ledgerRepo:  ledgerRepo,
		metrics:     commitMetrics,
		logg:        logg,
	}, nil
}

// CheckoutCommit redeems every pending cart line against the given work
// order. Lines are processed in part-number order so concurrent commits
// acquire row locks in a stable order. Any shortage aborts the whole commit;
// the cart is only cleared when every line succeeds.
func (s *service) CheckoutCommit(ctx context.Context, input CheckoutInput) (*CheckoutReceipt, error) {
	start := time.Now()
	receipt, err := s.checkoutCommit(ctx, input)
	s.metrics.Observe("checkout", time.Since(start), err)
	return receipt, err
}

func (s *service) checkoutCommit(ctx context.Context, input CheckoutInput) (*CheckoutReceipt, error) {
	workOrderNo := strings.TrimSpace(input.WorkOrderNo)
	if workOrderNo == "" {
		return nil, errors.New(errors.CodeValidation, "work_order_no is required").
			WithDetails(map[string]string{"field": "work_order_no"})
	}

	var receipt *CheckoutReceipt
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalogRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		stockRepo := s.stockRepo.WithTx(tx)
		ledgerRepo := s.ledgerRepo.WithTx(tx)

		user, err := catalogRepo.EnsureUser(ctx, input.UserUPN)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to resolve user")
		}
		if err := catalogRepo.EnsureWorkOrder(ctx, workOrderNo); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to resolve work order")
		}

		lines, err := cartRepo.ListLinesByUser(ctx, user.ID)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to read cart lines")
		}
		if len(lines) == 0 {
			return errors.New(errors.CodeEmptyCart, "cart has no lines to commit")
		}

		out := &CheckoutReceipt{WorkOrderNo: workOrderNo, Lines: make([]ReceiptLine, 0, len(lines))}
		for _, line := range lines {
			record, err := stockRepo.LockForUpdate(ctx, line.PartNo)
			if err != nil {
				return errors.Wrap(errors.CodeInternal, err, "failed to lock stock row")
			}
			available := 0
			if record != nil {
				available = record.QtyOnHand
			}
			if available < 1 {
				return errors.New(errors.CodeOutOfStock, "insufficient stock for part").
					WithDetails(map[string]any{"part_no": line.PartNo, "available": available})
			}
			if err := stockRepo.Decrement(ctx, line.PartNo); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "failed to decrement stock")
			}

			if err := s.record(ctx, ledgerRepo, movement{
				txnType:     enums.TxnCheckout,
				partNo:      line.PartNo,
				workOrderNo: workOrderNo,
				userID:      user.ID,
				ip:          input.ClientIP,
				userAgent:   input.UserAgent,
				prevQty:     available,
				newQty:      available - 1,
			}); err != nil {
				return err
			}

			out.Lines = append(out.Lines, ReceiptLine{
				PartNo:  line.PartNo,
				Qty:     1,
				PrevQty: available,
				NewQty:  available - 1,
			})
		}

		if _, err := cartRepo.ClearLinesByUser(ctx, user.ID); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to clear cart")
		}

		receipt = out
		return nil
	})
	if err != nil {
		if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeOutOfStock {
			s.metrics.IncOutOfStock()
		}
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("checkout committed: %d lines against %s", len(receipt.Lines), receipt.WorkOrderNo))
	}
	return receipt, nil
}

// Checkin returns one unit of a part to stock, bootstrapping the catalog row
// and stock record when the part has never been seen before.
func (s *service) Checkin(ctx context.Context, input CheckinInput) (*CheckinReceipt, error) {
	start := time.Now()
	receipt, err := s.checkin(ctx, input)
	s.metrics.Observe("checkin", time.Since(start), err)
	return receipt, err
}

func (s *service) checkin(ctx context.Context, input CheckinInput) (*CheckinReceipt, error) {
	partNo := strings.TrimSpace(input.PartNo)
	workOrderNo := strings.TrimSpace(input.WorkOrderNo)
	vendorClaimNo := strings.TrimSpace(input.VendorClaimNo)

	missing := []string{}
	if partNo == "" {
		missing = append(missing, "part_no")
	}
	if workOrderNo == "" {
		missing = append(missing, "work_order_no")
	}
	if vendorClaimNo == "" {
		missing = append(missing, "vendor_claim_no")
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.CodeValidation, "missing required fields").
			WithDetails(map[string]any{"missing": missing})
	}

	var receipt *CheckinReceipt
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalogRepo.WithTx(tx)
		stockRepo := s.stockRepo.WithTx(tx)
		ledgerRepo := s.ledgerRepo.WithTx(tx)

		user, err := catalogRepo.EnsureUser(ctx, input.UserUPN)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to resolve user")
		}
		if err := catalogRepo.EnsurePart(ctx, partNo, uncataloguedDescription, true); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to resolve part")
		}
		if err := catalogRepo.EnsureWorkOrder(ctx, workOrderNo); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to resolve work order")
		}

		record, err := stockRepo.LockForUpdate(ctx, partNo)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to lock stock row")
		}
		prev := 0
		if record == nil {
			if err := stockRepo.CreateIfMissing(ctx, partNo); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "failed to create stock row")
			}
		} else {
			prev = record.QtyOnHand
		}
		if err := stockRepo.Increment(ctx, partNo); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to increment stock")
		}

		if err := s.record(ctx, ledgerRepo, movement{
			txnType:       enums.TxnCheckin,
			partNo:        partNo,
			workOrderNo:   workOrderNo,
			vendorClaimNo: &vendorClaimNo,
			userID:        user.ID,
			ip:            input.ClientIP,
			userAgent:     input.UserAgent,
			prevQty:       prev,
			newQty:        prev + 1,
		}); err != nil {
			return err
		}

		receipt = &CheckinReceipt{
			PartNo:      partNo,
			WorkOrderNo: workOrderNo,
			PrevQty:     prev,
			NewQty:      prev + 1,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("checkin committed: %s against %s", receipt.PartNo, receipt.WorkOrderNo))
	}
	return receipt, nil
}

// movement bundles the shared fields of the paired transaction and ledger
// rows written for one stock mutation.
type movement struct {
	txnType       enums.TxnType
	partNo        string
	workOrderNo   string
	vendorClaimNo *string
	userID        uuid.UUID
	ip            string
	userAgent     string
	prevQty       int
	newQty        int
}

func (s *service) record(ctx context.Context, ledgerRepo ledger.Repository, m movement) error {
	txn := models.Transaction{
		ID:            uuid.New(),
		Type:          m.txnType,
		PartNo:        m.partNo,
		Qty:           1,
		WorkOrderNo:   m.workOrderNo,
		VendorClaimNo: m.vendorClaimNo,
		UserID:        m.userID,
	}
	if err := ledgerRepo.CreateTransaction(ctx, &txn); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to record transaction")
	}

	entry := models.LedgerEntry{
		ID:            uuid.New(),
		UserID:        m.userID,
		Action:        m.txnType,
		PartNo:        m.partNo,
		Qty:           1,
		WorkOrderNo:   m.workOrderNo,
		VendorClaimNo: m.vendorClaimNo,
		IP:            m.ip,
		UserAgent:     m.userAgent,
		PrevQty:       m.prevQty,
		NewQty:        m.newQty,
	}
	if err := ledgerRepo.CreateEntry(ctx, &entry); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to record ledger entry")
	}
	return nil
}
