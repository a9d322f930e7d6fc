package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/models"
)

func TestDecrementStock(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 3})

	ok, err := decrementStock(db, product.ID, "md", 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, stockFor(t, db, product.ID, "md"))

	// The conditional UPDATE refuses to take the bucket below zero.
	ok, err = decrementStock(db, product.ID, "md", 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, stockFor(t, db, product.ID, "md"))

	ok, err = decrementStock(db, product.ID, "md", 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, stockFor(t, db, product.ID, "md"))
}

func TestDecrementStockUnknownSize(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 3})

	_, err := decrementStock(db, product.ID, "xxl; DROP TABLE quantities", 1)
	require.ErrorIs(t, err, models.ErrInvalidSize)
}

func TestDecrementStockMissingProduct(t *testing.T) {
	db := newTestDB(t)

	ok, err := decrementStock(db, 9999, "md", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncrementStock(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Lg: 1})

	require.NoError(t, incrementStock(db, product.ID, "lg", 2))
	assert.Equal(t, 3, stockFor(t, db, product.ID, "lg"))

	err := incrementStock(db, 9999, "lg", 1)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
