package mysql

import (
	"context"
	"testing"
	"time"

	txDomain "motac-hrms/internal/domain/loantx"
	"motac-hrms/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type loanTxSQLite struct {
	ID                 uint64         `gorm:"primaryKey;column:id"`
	TransactionID      string         `gorm:"size:32;column:transaction_id"`
	LoanApplicationID  uint64         `gorm:"column:loan_application_id"`
	EquipmentID        uint64         `gorm:"column:equipment_id"`
	Status             string         `gorm:"type:text;column:status"` // ← no enum
	IssuingOfficerID   string         `gorm:"size:32;column:issuing_officer_id"`
	ReceivingOfficerID string         `gorm:"size:32;column:receiving_officer_id"`
	ReturningOfficerID string         `gorm:"size:32;column:returning_officer_id"`
	IssueTimestamp     time.Time      `gorm:"column:issue_timestamp"`
	ReturnTimestamp    *time.Time     `gorm:"column:return_timestamp"`
	Accessories        string         `gorm:"column:accessories"`
	ReturnNotes        string         `gorm:"column:return_notes"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanTxSQLite) TableName() string { return "loan_transactions" }

func openLoanTxTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanTxSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestListOpenByApplication(t *testing.T) {
	db := openLoanTxTestDB(t)
	repo := NewLoanTransactionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mk := func(appID uint64, status txDomain.Status) *txDomain.LoanTransaction {
		return &txDomain.LoanTransaction{
			TransactionID:     id.NewID32(),
			LoanApplicationID: appID,
			EquipmentID:       1,
			Status:            status,
			IssueTimestamp:    now,
		}
	}
	open1 := mk(3, txDomain.StatusIssued)
	open2 := mk(3, txDomain.StatusOverdue)
	closed := mk(3, txDomain.StatusReturned)
	otherApp := mk(4, txDomain.StatusIssued)
	for _, tx := range []*txDomain.LoanTransaction{open1, open2, closed, otherApp} {
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	open, err := repo.ListOpenByApplication(ctx, 3)
	if err != nil {
		t.Fatalf("ListOpenByApplication: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("len = %d, want 2", len(open))
	}
	for _, tx := range open {
		if !tx.Status.Open() {
			t.Fatalf("closed transaction in result: %+v", tx)
		}
	}
}

func TestCloseTransactionRoundTrip(t *testing.T) {
	db := openLoanTxTestDB(t)
	repo := NewLoanTransactionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	tx := &txDomain.LoanTransaction{
		TransactionID:     id.NewID32(),
		LoanApplicationID: 9,
		EquipmentID:       2,
		Status:            txDomain.StatusIssued,
		IssueTimestamp:    now,
	}
	if err := repo.Create(ctx, tx); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByTransactionID(ctx, tx.TransactionID)
	if err != nil {
		t.Fatalf("GetByTransactionID: %v", err)
	}
	if err := got.Close(txDomain.StatusReturned, id.NewID32(), "all accessories present", now); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reread, err := repo.GetByTransactionID(ctx, tx.TransactionID)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if reread.Status != txDomain.StatusReturned || reread.ReturnTimestamp == nil {
		t.Fatalf("reread = %+v", reread)
	}
}
