// Package orders lists the logged-in client's order history.
package orders

import (
	"context"

	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/logger"
)

type Service struct {
	api     domain.OrderAPI
	clients domain.ClientSource
	log     *logger.Logger
}

func New(api domain.OrderAPI, clients domain.ClientSource, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, clients: clients, log: log}
}

// History returns the current client's orders, newest first as served. A
// response that cannot be decoded is reported as an empty history.
func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	client, ok, err := s.clients.CurrentClient(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotAuthenticated, "log in to see your orders")
	}
	ctx = s.log.WithClientID(ctx, int64(client.ID))

	list, err := s.api.FetchOrders(ctx, client.ID)
	if apperrors.Is(err, apperrors.CodeMalformedResponse) {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "order history unreadable")
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Compile-time assertion that Service implements domain.OrderHistoryService.
var _ domain.OrderHistoryService = (*Service)(nil)
