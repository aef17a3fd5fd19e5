package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Austin-Patrician/eastmoney/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFundService_List(t *testing.T) {
	fc := &fakeClient{funds: []models.Fund{{ID: "f1"}}}
	funds, err := NewFundService(fc).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, funds, 1)

	fc.fundsErr = errBoom
	_, err = NewFundService(fc).List(context.Background())
	require.ErrorIs(t, err, errBoom)
}

func TestFundService_AddTrimsAndValidates(t *testing.T) {
	fc := &fakeClient{}
	svc := NewFundService(fc)

	_, err := svc.Add(context.Background(), models.NewFund{FundCode: " ", FundName: "Alpha"})
	require.ErrorIs(t, err, ErrMissingInput)
	assert.Nil(t, fc.added)

	f, err := svc.Add(context.Background(), models.NewFund{FundCode: " 000001 ", FundName: " Alpha "})
	require.NoError(t, err)
	assert.Equal(t, "f-new", f.ID)
	assert.Equal(t, models.NewFund{FundCode: "000001", FundName: "Alpha"}, *fc.added)
}

func TestFundService_Delete(t *testing.T) {
	fc := &fakeClient{}
	svc := NewFundService(fc)

	require.ErrorIs(t, svc.Delete(context.Background(), ""), ErrMissingInput)
	require.NoError(t, svc.Delete(context.Background(), "f1"))
	assert.Equal(t, "f1", fc.deleted)

	fc.delErr = errBoom
	require.ErrorIs(t, svc.Delete(context.Background(), "f1"), errBoom)
}

func TestFundService_Search(t *testing.T) {
	fc := &fakeClient{results: []json.RawMessage{json.RawMessage(`{"code":"1"}`)}}
	svc := NewFundService(fc)

	_, err := svc.Search(context.Background(), "  ")
	require.ErrorIs(t, err, ErrMissingInput)

	res, err := svc.Search(context.Background(), " bond ")
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "bond", fc.searched)
}
