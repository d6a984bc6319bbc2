package ledger

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping
	"math"    // Overflow check
	"strings" // Driver message inspection

	"wallet_ledger/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM
)

var (
	// ErrUserNotFound is returned when the target user id has no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// NewUser holds the fields supplied at registration
type NewUser struct {
	Name  string // Display name
	Email string // Unique email
	Phone string // Phone number
}

// Service implements the ledger operations over an injected GORM handle.
type Service struct {
	db *gorm.DB // Shared connection pool
}

// NewService wraps db. The handle is shared; every call opens its own session.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// session scopes a GORM session to ctx. Its connection goes back to the
// pool as soon as the statement (or transaction) using it finishes.
func (s *Service) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// CreateUser inserts a user with a zero balance.
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	user := domain.User{Name: in.Name, Email: in.Email, Phone: in.Phone} // Balance defaults to 0
	if err := s.session(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken // Unique index on email
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// ListUsers returns every user ordered by id.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0) // Encode as [] when empty
	if err := s.session(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// AdjustWallet adds amount to the user's balance and records the matching
// ledger entry in one unit of work. It returns the new balance.
//
// The balance is read and written back without a row lock, so two
// concurrent adjustments of the same user can lose one update while both
// ledger entries are kept.
func (s *Service) AdjustWallet(ctx context.Context, userID uint, amount float64) (float64, error) {
	if userID == 0 {
		return 0, ErrUserNotFound // Ids start at 1
	}
	var balance float64
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("loading user %d: %w", userID, err)
		}

		next := user.WalletBalance + amount // Plain float64 sum
		if math.IsInf(next, 0) {
			return fmt.Errorf("balance of user %d overflows", userID)
		}
		if err := tx.Model(&user).Update("wallet_balance", next).Error; err != nil {
			return fmt.Errorf("updating balance of user %d: %w", userID, err)
		}

		entry := domain.NewTransaction(user.ID, amount) // Append-only ledger row
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("recording transaction for user %d: %w", userID, err)
		}
		balance = next
		return nil // Commit
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Transactions returns the user's ledger entries in insertion order.
func (s *Service) Transactions(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	if userID == 0 {
		return nil, ErrUserNotFound // Ids start at 1
	}
	db := s.session(ctx)

	var user domain.User
	if err := db.Select("id").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}

	txs := make([]domain.Transaction, 0) // Encode as [] when empty
	if err := db.Where("user_id = ?", user.ID).Order("id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("listing transactions of user %d: %w", userID, err)
	}
	return txs, nil
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB() // Underlying database/sql pool
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite drivers without error translation only expose the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
