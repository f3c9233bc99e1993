package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/car-rental-api/api/handlers"
	"github.com/linesmerrill/car-rental-api/databases/mocks"
	"github.com/linesmerrill/car-rental-api/models"
)

func dialLiveSearch(t *testing.T, db *mocks.CarDatabase) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handlers.LiveSearch{DB: db}.LiveSearchHandler))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLiveSearch_LiveSearchHandler(t *testing.T) {
	db := &mocks.CarDatabase{}
	db.On("Find", mock.Anything, bson.M{}).Return(testCatalog(), nil)
	conn := dialLiveSearch(t, db)

	require.NoError(t, conn.WriteJSON(models.LiveSearchQuery{Query: "NIS"}))
	var got models.LiveSearchResult
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "NIS", got.Query)
	assert.Equal(t, []string{"c2"}, carIDs(got.Results))

	require.NoError(t, conn.WriteJSON(models.LiveSearchQuery{Query: "r"}))
	got = models.LiveSearchResult{}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, []string{"c2", "c3", "c4"}, carIDs(got.Results))

	db.AssertNumberOfCalls(t, "Find", 2)
}

func TestLiveSearch_LiveSearchHandlerBlankQuery(t *testing.T) {
	db := &mocks.CarDatabase{}
	db.On("Find", mock.Anything, bson.M{}).Return(testCatalog(), nil)
	conn := dialLiveSearch(t, db)

	require.NoError(t, conn.WriteJSON(models.LiveSearchQuery{Query: "   "}))
	var got models.LiveSearchResult
	require.NoError(t, conn.ReadJSON(&got))
	assert.NotNil(t, got.Results)
	assert.Empty(t, got.Results)
}

func TestLiveSearch_LiveSearchHandlerFindFailed(t *testing.T) {
	db := &mocks.CarDatabase{}
	db.On("Find", mock.Anything, bson.M{}).Return(nil, errors.New("connection refused"))
	conn := dialLiveSearch(t, db)

	require.NoError(t, conn.WriteJSON(models.LiveSearchQuery{Query: "gt"}))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseInternalServerErr))
}
