package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"column:password"`
	Role         string `gorm:"index;size:64"`
	Photo        string `gorm:"size:255"`
	Verified     bool   `gorm:"index"`
	Active       bool   `gorm:"index"`

	PasswordChangedAt *time.Time

	VerifyTokenHash      string `gorm:"index;size:64"`
	VerifyTokenExpiresAt *time.Time

	ResetTokenHash      string `gorm:"index;size:64"`
	ResetTokenExpiresAt *time.Time

	LoginAttempts int
	LastAttemptAt *time.Time
	LockedUntil   *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		return err
	}
	account.ID = dbAccount.ID
	account.CreatedAt = dbAccount.CreatedAt
	account.UpdatedAt = dbAccount.UpdatedAt
	return nil
}

// FindByEmail implements domain.AccountRepository. It only returns active
// accounts: deactivated ones behave as if they do not exist for login,
// signup-duplicate and reset flows.
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("email = ? AND active = ?", email, true).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByID implements domain.AccountRepository. Lookups by id are not
// filtered on the active flag so token-holders of a deactivated account get
// a distinct verdict from the caller.
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByVerifyTokenHash implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByVerifyTokenHash(ctx context.Context, hash string, now time.Time) (*domain.Account, error) {
	return r.findByToken(ctx, "verify_token_hash = ? AND verify_token_expires_at > ?", hash, now)
}

// FindByResetTokenHash implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*domain.Account, error) {
	return r.findByToken(ctx, "reset_token_hash = ? AND reset_token_expires_at > ?", hash, now)
}

func (r *AccountRepositoryImpl) findByToken(ctx context.Context, query string, hash string, now time.Time) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where(query, hash, now).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// Update implements domain.AccountRepository
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	// Save with Select("*") also persists cleared token fields and zeroed
	// lockout counters.
	return r.db.WithContext(ctx).Model(&DBAccount{ID: account.ID}).Select("*").Omit("id", "created_at").Updates(dbAccount).Error
}

// Deactivate implements domain.AccountRepository, the soft delete used by
// the delete-me flow. The row is never physically removed.
func (r *AccountRepositoryImpl) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Update("active", false).Error
}

// domainToDB converts domain account to database account
func (r *AccountRepositoryImpl) domainToDB(account *domain.Account) *DBAccount {
	return &DBAccount{
		ID:                   account.ID,
		Name:                 account.Name,
		Email:                account.Email,
		PasswordHash:         account.PasswordHash,
		Role:                 account.Role,
		Photo:                account.Photo,
		Verified:             account.Verified,
		Active:               account.Active,
		PasswordChangedAt:    account.PasswordChangedAt,
		VerifyTokenHash:      account.VerifyTokenHash,
		VerifyTokenExpiresAt: account.VerifyTokenExpiresAt,
		ResetTokenHash:       account.ResetTokenHash,
		ResetTokenExpiresAt:  account.ResetTokenExpiresAt,
		LoginAttempts:        account.LoginAttempts,
		LastAttemptAt:        account.LastAttemptAt,
		LockedUntil:          account.LockedUntil,
	}
}

// dbToDomain converts database account to domain account
func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	return &domain.Account{
		ID:                   dbAccount.ID,
		Name:                 dbAccount.Name,
		Email:                dbAccount.Email,
		PasswordHash:         dbAccount.PasswordHash,
		Role:                 dbAccount.Role,
		Photo:                dbAccount.Photo,
		Verified:             dbAccount.Verified,
		Active:               dbAccount.Active,
		PasswordChangedAt:    dbAccount.PasswordChangedAt,
		VerifyTokenHash:      dbAccount.VerifyTokenHash,
		VerifyTokenExpiresAt: dbAccount.VerifyTokenExpiresAt,
		ResetTokenHash:       dbAccount.ResetTokenHash,
		ResetTokenExpiresAt:  dbAccount.ResetTokenExpiresAt,
		LoginAttempts:        dbAccount.LoginAttempts,
		LastAttemptAt:        dbAccount.LastAttemptAt,
		LockedUntil:          dbAccount.LockedUntil,
		CreatedAt:            dbAccount.CreatedAt,
		UpdatedAt:            dbAccount.UpdatedAt,
	}
}
