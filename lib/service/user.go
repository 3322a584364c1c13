package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kittyhub/kittyhub.go/db"
	"github.com/kittyhub/kittyhub.go/db/models"
	"github.com/kittyhub/kittyhub.go/lib/security"
	"github.com/kittyhub/kittyhub.go/lib/tokens"
	"github.com/labstack/gommon/random"
	"github.com/uptrace/bun"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

const alphaNumBytes = random.Alphanumeric

func (svc *KittyhubService) CreateUser(ctx context.Context, login string, password string) (user *models.User, err error) {
	user = &models.User{}

	// generate user login/password if not provided
	user.Login = login
	if login == "" {
		user.Login = random.String(20, alphaNumBytes)
	}
	if password == "" {
		password = random.String(20, alphaNumBytes)
	} else if svc.Config.MinPasswordEntropy > 0 {
		entropy := passwordvalidator.GetEntropy(password)
		if entropy < float64(svc.Config.MinPasswordEntropy) {
			return nil, fmt.Errorf("password entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
		}
	}
	// we only store the hashed password but return the initial plain text password in the HTTP response
	user.Password = security.HashPassword(password)

	// Create the user together with their bank accounts and, when
	// configured, the starting balance. The tx rides the context so the
	// bank writes join the same transaction as the user insert.
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		ctx = db.WithTx(ctx, tx)
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return err
		}
		if err := svc.Bank.Setup(ctx, user.ID); err != nil {
			return err
		}
		if svc.Config.StartingBalance > 0 {
			return svc.Bank.Deposit(ctx, user.ID, svc.Config.StartingBalance)
		}
		return nil
	})
	// return the actual password in the response, not the hashed one
	user.Password = password
	return user, err
}

func (svc *KittyhubService) FindUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userID).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (svc *KittyhubService) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("login = ?", login).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (svc *KittyhubService) CurrentUserBalance(ctx context.Context, userID int64) (int64, error) {
	return svc.Bank.Balance(ctx, userID)
}

func (svc *KittyhubService) GenerateToken(ctx context.Context, login, password string) (accessToken, refreshToken string, err error) {
	if login == "" || password == "" {
		return "", "", fmt.Errorf("login and password are required")
	}

	user, err := svc.FindUserByLogin(ctx, login)
	if err != nil {
		return "", "", fmt.Errorf("bad auth")
	}
	if !security.VerifyPassword(user.Password, password) {
		return "", "", fmt.Errorf("bad auth")
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, user)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
