package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/api"
	"github.com/linesmerrill/car-rental-api/catalog"
	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/models"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveSearch exported for testing purposes
type LiveSearch struct {
	DB databases.CarDatabase
}

// LiveSearchHandler answers every {"query": "..."} message with the cars whose
// name matches it, re-reading the catalog each time
func (l LiveSearch) LiveSearchHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade error", "error", err)
		return
	}
	defer conn.Close()

	api.LiveSearchConnections.Inc()
	defer api.LiveSearchConnections.Dec()

	for {
		var msg models.LiveSearchQuery
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.S().Debugw("live search connection closed", "error", err)
			}
			return
		}

		ctx, cancel := api.WithQueryTimeout(r.Context())
		cars, err := l.DB.Find(ctx, bson.M{})
		cancel()
		if err != nil {
			zap.S().Errorw("failed to get cars for live search", "error", err)
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "failed to get cars"))
			return
		}

		if err := conn.WriteJSON(models.LiveSearchResult{
			Query:   msg.Query,
			Results: catalog.Search(cars, msg.Query),
		}); err != nil {
			zap.S().Debugw("failed to write live search result", "error", err)
			return
		}
	}
}
