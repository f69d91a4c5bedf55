package transactions

import (
	"context"
	"errors"
	"testing"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository/repositorytest"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	store := new(repositorytest.MockStore[models.Transaction])
	store.On("List", ctx, nil).Return([]models.Transaction{{TransactionID: "TXN-1", TransactionType: models.TransactionIn}}, nil).Once()
	store.On("List", ctx, nil).Return(nil, errors.New("offline")).Once()
	service := NewTransactionService(store)

	got, err := service.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = service.List(ctx)
	assert.Error(t, err)
	assert.Nil(t, got)
}
