package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

func TestOpenRejectsUnsupportedScheme(t *testing.T) {
	_, err := Open("mysql://localhost/kittyhub", 10, 5, time.Minute)
	assert.Error(t, err)

	_, err = Open("", 10, 5, time.Minute)
	assert.Error(t, err)
}

func TestFromContextReturnsStoredTx(t *testing.T) {
	ctx := WithTx(context.Background(), bun.Tx{})

	idb := FromContext(ctx, nil)
	assert.NotNil(t, idb)
	_, ok := idb.(bun.Tx)
	assert.True(t, ok)
}

func TestFromContextFallsBackWithoutTx(t *testing.T) {
	assert.Nil(t, FromContext(context.Background(), nil))

	fallback := &bun.DB{}
	assert.Equal(t, bun.IDB(fallback), FromContext(context.Background(), fallback))
}
