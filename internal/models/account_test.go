package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Validate(t *testing.T) {
	validUserID := uuid.New()

	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid checking account",
			account: Account{UserID: validUserID, Name: "Everyday", AccountType: AccountTypeChecking},
		},
		{
			name:    "valid credit card account",
			account: Account{UserID: validUserID, Name: "Rewards Card", AccountType: AccountTypeCreditCard},
		},
		{
			name:    "missing user ID",
			account: Account{Name: "Everyday", AccountType: AccountTypeChecking},
			wantErr: true,
			errMsg:  "user ID is required",
		},
		{
			name:    "invalid account type",
			account: Account{UserID: validUserID, Name: "Mystery", AccountType: "brokerage_x"},
			wantErr: true,
			errMsg:  "invalid account type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAccount_IsLiability(t *testing.T) {
	tests := []struct {
		accountType string
		expected    bool
	}{
		{AccountTypeChecking, false},
		{AccountTypeSavings, false},
		{AccountTypeMoneyMarket, false},
		{AccountTypeInvestment, false},
		{AccountTypeCreditCard, true},
		{AccountTypeCreditLine, true},
	}

	for _, tt := range tests {
		account := Account{AccountType: tt.accountType}
		assert.Equal(t, tt.expected, account.IsLiability(), tt.accountType)
	}
}

func TestPayee_BeforeCreate(t *testing.T) {
	p := &Payee{UserID: uuid.New(), CanonicalName: "  Blue   Bottle Coffee "}
	require.NoError(t, p.BeforeCreate(nil))

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Blue Bottle Coffee", p.CanonicalName)
	assert.Equal(t, "blue bottle coffee", p.NormalizedName)
	assert.False(t, p.CreatedAt.IsZero())

	empty := &Payee{UserID: uuid.New(), CanonicalName: "   "}
	assert.ErrorIs(t, empty.BeforeCreate(nil), ErrEmptyPayeeName)
}
