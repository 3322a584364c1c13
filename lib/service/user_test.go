package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRejectsLowEntropyPassword(t *testing.T) {
	svc := newTestService(t)
	svc.Config.MinPasswordEntropy = 60

	_, err := svc.CreateUser(context.Background(), "carol", "aaa")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "password entropy is too low")
}
