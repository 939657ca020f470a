package services

import (
	"context"

	"corso/internal/models/db_models"
	"corso/internal/models/request_models"
	"corso/internal/models/response_models"
	"corso/internal/repositories"
	"corso/pkg/utils"
)

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (string, error)
	CreateAccount(request request_models.SignUpRequest) error
	GetProfile(ctx context.Context, userID string) (response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (string, error) {

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if account == nil {
		return "", utils.ErrAccountNotFound
	}

	err = utils.ComparePasswords(account.PasswordHash, request.Password)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(request request_models.SignUpRequest) error {

	existingAccount, err := a.accountRepo.FindByEmail(context.Background(), request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
	}

	if err := a.accountRepo.InsertTx(newAccount, context.Background()); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}

	return response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
	}, nil
}
