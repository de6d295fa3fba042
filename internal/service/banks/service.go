// Package banks is the service seam between the HTTP API and bank storage.
// It forwards each operation unchanged so the store can be swapped (memory,
// postgres) without touching the API layer.
package banks

import (
	"context"

	"github.com/tinoosan/volley/internal/bank"
)

type Repo interface {
	ListBanks(ctx context.Context) ([]bank.Bank, error)
	GetBank(ctx context.Context, accountNumber string) (bank.Bank, error)
}

type Writer interface {
	CreateBank(ctx context.Context, b bank.Bank) (bank.Bank, error)
	UpdateBank(ctx context.Context, b bank.Bank) (bank.Bank, error)
	DeleteBank(ctx context.Context, accountNumber string) error
}

type Service interface {
	List(ctx context.Context) ([]bank.Bank, error)
	Get(ctx context.Context, accountNumber string) (bank.Bank, error)
	Create(ctx context.Context, b bank.Bank) (bank.Bank, error)
	Update(ctx context.Context, b bank.Bank) (bank.Bank, error)
	Delete(ctx context.Context, accountNumber string) error
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) List(ctx context.Context) ([]bank.Bank, error) { return s.repo.ListBanks(ctx) }

func (s *service) Get(ctx context.Context, accountNumber string) (bank.Bank, error) {
	return s.repo.GetBank(ctx, accountNumber)
}

func (s *service) Create(ctx context.Context, b bank.Bank) (bank.Bank, error) {
	return s.writer.CreateBank(ctx, b)
}

func (s *service) Update(ctx context.Context, b bank.Bank) (bank.Bank, error) {
	return s.writer.UpdateBank(ctx, b)
}

func (s *service) Delete(ctx context.Context, accountNumber string) error {
	return s.writer.DeleteBank(ctx, accountNumber)
}
