// Package service implements the read-only directory lookups.
package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/internal/directory/domain"
	"github.com/kmurdhar/PrinterManagementSystem/pkg/db/option"
	"github.com/kmurdhar/PrinterManagementSystem/pkg/repository"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	log *zap.Logger

	userrepo    repository.Repository[domain.User]
	printerrepo repository.Repository[domain.Printer]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log: p.Log.Named("directory.service"),

		userrepo:    repository.ProvideStore[domain.User](p.DB),
		printerrepo: repository.ProvideStore[domain.Printer](p.DB),
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	items, err := s.userrepo.Find(ctx, option.WithOrder("user_name ASC"))
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		users = append(users, *item)
	}
	return users, nil
}

func (s *Service) ListPrinters(ctx context.Context) ([]domain.Printer, error) {
	items, err := s.printerrepo.Find(ctx, option.WithOrder("printer_name ASC"))
	if err != nil {
		return nil, err
	}
	printers := make([]domain.Printer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		printers = append(printers, *item)
	}
	return printers, nil
}
